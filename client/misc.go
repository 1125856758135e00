package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

type HealthStatus struct {
	Status string `json:"status"`
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Login exchanges the admin password for the admin token. A wrong password is a 401 *errs.ApiErr.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	var res loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Password: password}, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadImage sends the image as multipart field "file" and returns its stored URL
func (c *Client) UploadImage(ctx context.Context, filename string, image io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/uploads/images", nil, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var res uploadResponse
	if err := c.do(req, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}
