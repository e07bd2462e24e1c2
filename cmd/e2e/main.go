package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
)

func baseURL() string {
	if u := os.Getenv("CATALOG_URL"); u != "" {
		return strings.TrimSuffix(u, "/")
	}
	switch os.Getenv("ENV") {
	case "CI":
		return "http://catalog-app:8080"
	}
	return "http://localhost:8080"
}

func adminCode() string {
	if c := os.Getenv("ADMIN_SECRET"); c != "" {
		return c
	}
	return "shared"
}

type api struct {
	client *http.Client
	token  string
}

type step struct {
	name string
	run  func() error
}

type created struct {
	ID string `json:"id"`
}

func main() {
	fmt.Println("Starting E2E run against catalog API...")

	a := &api{client: &http.Client{Timeout: 30 * time.Second}}

	if !a.waitForService() {
		os.Exit(1)
	}

	var categoryID, genreID, castMemberID, videoID string
	steps := []step{
		{"authenticate", a.authenticate},
		{"create category", func() (err error) {
			categoryID, err = a.createJSON("/categories", map[string]any{"name": "E2E Movies", "description": "created by e2e"})
			return err
		}},
		{"create genre", func() (err error) {
			genreID, err = a.createJSON("/genres", map[string]any{"name": "E2E Drama", "categories_id": []string{categoryID}})
			return err
		}},
		{"create cast member", func() (err error) {
			castMemberID, err = a.createJSON("/cast_members", map[string]any{"name": "E2E Director", "type": 1})
			return err
		}},
		{"create video with thumb", func() (err error) {
			videoID, err = a.createVideo(categoryID, genreID, castMemberID)
			return err
		}},
		{"get video", func() error {
			return a.expect(http.MethodGet, "/videos/"+videoID, nil, "", http.StatusOK)
		}},
		{"thumb url", func() error {
			return a.expect(http.MethodGet, "/videos/"+videoID+"/assets/thumb", nil, "", http.StatusOK)
		}},
		{"list videos", func() error {
			return a.expect(http.MethodGet, "/videos?search=E2E", nil, "", http.StatusOK)
		}},
		{"delete video", func() error {
			return a.expect(http.MethodDelete, "/videos/"+videoID, nil, "", http.StatusNoContent)
		}},
	}

	for i, s := range steps {
		fmt.Printf("\n Step %d: %s...\n", i+1, s.name)
		if err := s.run(); err != nil {
			fmt.Printf("%s failed: %v\n", s.name, err)
			os.Exit(1)
		}
	}

	fmt.Println("\n All E2E steps passed!")
}

func (a *api) waitForService() bool {
	fmt.Println(" Waiting for service to be ready...")

	const maxRetries = 5
	for i := 0; i < maxRetries; i++ {
		resp, err := a.client.Get(baseURL() + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				fmt.Println(" Service is ready!")
				return true
			}
		}

		if i < maxRetries-1 {
			fmt.Printf(" Service not ready yet (attempt %d/%d)...\n", i+1, maxRetries)
			time.Sleep(2 * time.Second)
		}
	}

	fmt.Println(" Service didn't start in time")
	return false
}

func (a *api) do(method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequest(method, baseURL()+"/api/v1"+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if a.token != "" {
		req.Header.Set("X-admin-token", a.token)
	}
	return a.client.Do(req)
}

func (a *api) expect(method, path string, body io.Reader, contentType string, status int) error {
	resp, err := a.do(method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != status {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, string(raw))
	}
	return nil
}

func (a *api) authenticate() error {
	body, err := json.Marshal(map[string]string{"code": adminCode()})
	if err != nil {
		return fmt.Errorf("failed to marshal auth request: %w", err)
	}

	resp, err := a.do(http.MethodPost, "/auth", bytes.NewReader(body), "application/json")
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("auth returned status %d: %s", resp.StatusCode, string(raw))
	}

	a.token = resp.Header.Get("X-admin-token")
	if a.token == "" {
		return fmt.Errorf("admin token not found in response headers")
	}
	return nil
}

func (a *api) createJSON(path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	resp, err := a.do(http.MethodPost, path, bytes.NewReader(body), "application/json")
	if err != nil {
		return "", err
	}
	return decodeCreated(resp)
}

func (a *api) createVideo(categoryID, genreID, castMemberID string) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := [][2]string{
		{"title", "E2E Video"},
		{"description", "uploaded by e2e"},
		{"year_launched", "2010"},
		{"duration", "148"},
		{"rating", "14"},
		{"categories_id", categoryID},
		{"genres_id", genreID},
		{"cast_members_id", castMemberID},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return "", err
		}
	}

	fw, err := w.CreateFormFile("thumb_file", "thumb.png")
	if err != nil {
		return "", err
	}
	img := image.NewRGBA(image.Rect(0, 0, 64, 36))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})
	if err := png.Encode(fw, img); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	resp, err := a.do(http.MethodPost, "/videos", &body, w.FormDataContentType())
	if err != nil {
		return "", err
	}
	return decodeCreated(resp)
}

func decodeCreated(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("returned status %d: %s", resp.StatusCode, string(raw))
	}

	var c created
	if err := json.Unmarshal(raw, &c); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	fmt.Printf(" created %s\n", c.ID)
	return c.ID, nil
}
