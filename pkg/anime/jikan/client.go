package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"otakupal-be/pkg/anime"
)

const DefaultBaseURL = "https://api.jikan.moe/v4"

// Client is a minimal Jikan v4 API client covering the three calls the
// chatbot needs: search, full details, and the character list.
type Client struct {
	BaseURL string
	Client  *http.Client
}

var _ anime.Fetcher = &Client{}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Response structs (internal to this package) ---

type searchResponse struct {
	Data []struct {
		MalId int `json:"mal_id"`
	} `json:"data"`
}

type fullResponse struct {
	Data struct {
		Title    string  `json:"title"`
		Synopsis string  `json:"synopsis"`
		Score    float64 `json:"score"`
		Episodes int     `json:"episodes"`
		Genres   []struct {
			Name string `json:"name"`
		} `json:"genres"`
		Staff []struct {
			Person struct {
				Name string `json:"name"`
			} `json:"person"`
			Positions []string `json:"positions"`
		} `json:"staff"`
	} `json:"data"`
}

type charactersResponse struct {
	Data []struct {
		Character struct {
			Name string `json:"name"`
		} `json:"character"`
		Role        string `json:"role"`
		VoiceActors []struct {
			Person struct {
				Name string `json:"name"`
			} `json:"person"`
		} `json:"voice_actors"`
	} `json:"data"`
}

// GetAnimeData searches the catalog for the query and assembles the full
// record for the top hit. Returns (nil, nil) when the search has no result.
func (c *Client) GetAnimeData(ctx context.Context, query string) (*anime.Data, error) {
	var search searchResponse
	searchURL := c.BaseURL + "/anime?q=" + url.QueryEscape(query) + "&limit=1"
	if err := c.getJSON(ctx, searchURL, &search); err != nil {
		return nil, err
	}
	if len(search.Data) == 0 {
		return nil, nil
	}
	animeId := search.Data[0].MalId

	var full fullResponse
	if err := c.getJSON(ctx, c.BaseURL+"/anime/"+strconv.Itoa(animeId)+"/full", &full); err != nil {
		return nil, err
	}

	var chars charactersResponse
	if err := c.getJSON(ctx, c.BaseURL+"/anime/"+strconv.Itoa(animeId)+"/characters", &chars); err != nil {
		return nil, err
	}

	data := &anime.Data{
		Title:    full.Data.Title,
		Synopsis: full.Data.Synopsis,
		Rating:   full.Data.Score,
		Episodes: full.Data.Episodes,
	}
	for _, g := range full.Data.Genres {
		data.Genres = append(data.Genres, g.Name)
	}
	for _, s := range full.Data.Staff {
		role := ""
		if len(s.Positions) > 0 {
			role = s.Positions[0]
		}
		data.Staff = append(data.Staff, anime.StaffMember{
			Name: s.Person.Name,
			Role: role,
		})
	}
	for _, ch := range chars.Data {
		character := anime.Character{
			Name: ch.Character.Name,
			Role: ch.Role,
		}
		if len(ch.VoiceActors) > 0 {
			character.VoiceActor = ch.VoiceActors[0].Person.Name
		}
		data.Characters = append(data.Characters, character)
	}

	return data, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("jikan request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jikan error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
