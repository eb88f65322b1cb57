// Package main implements a terminal chat client for the TruckScout API.
// It posts each line to the conversational endpoint and prints the reply
// with its suggestions, keeping one session for the whole run.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatReply struct {
	Message     string   `json:"message"`
	Intent      string   `json:"intent"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	apiURL := envOr("TRUCKSCOUT_API", "http://localhost:8080")
	sessionID := fmt.Sprintf("cli-%d", time.Now().UnixNano())
	client := &http.Client{Timeout: 60 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("TruckScout chat. Ask about trucks, prices, or the market. Ctrl-D to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		reply, err := send(ctx, client, apiURL, sessionID, line)
		if err != nil {
			logger.Warn("request failed", "err", err)
			fmt.Println("(request failed, is the API running?)")
			continue
		}

		fmt.Printf("\n%s\n", reply.Message)
		if len(reply.Suggestions) > 0 {
			fmt.Println("\nYou could ask:")
			for _, s := range reply.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
		}
		fmt.Println()
	}
	fmt.Println("bye")
}

func send(ctx context.Context, client *http.Client, apiURL, sessionID, message string) (*chatReply, error) {
	body, err := json.Marshal(chatRequest{SessionID: sessionID, Message: message})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api returned %s", resp.Status)
	}

	var reply chatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	return &reply, nil
}
