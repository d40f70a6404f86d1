package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const baseURL = "http://localhost:8080"

const sampleText = "Scientists at a major research university announced today that a new vaccine candidate showed 94 percent efficacy in late-stage clinical trials involving more than 40,000 participants across six countries."

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	// 1. Health check
	fmt.Println("1. Checking health...")
	if !sendRequest("GET", "/health", nil) {
		fmt.Println("FAILED: Health check")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health check")

	// 2. Analyze
	fmt.Println("2. Analyzing sample text...")
	payload := map[string]string{
		"text": sampleText,
		"url":  "https://example.com/vaccine-study",
	}
	if !sendRequest("POST", "/api/fakenews/analyze", payload) {
		fmt.Println("FAILED: Analyze")
		os.Exit(1)
	}
	fmt.Println("PASSED: Analyze")

	// 3. Legacy endpoint
	fmt.Println("3. Analyzing through legacy endpoint...")
	legacyPayload := map[string]string{
		"content": sampleText,
		"url":     "https://example.com/vaccine-study",
	}
	if !sendRequest("POST", "/analyze", legacyPayload) {
		fmt.Println("FAILED: Legacy analyze")
		os.Exit(1)
	}
	fmt.Println("PASSED: Legacy analyze")
}

func sendRequest(method, endpoint string, payload interface{}) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("  %s %s -> %d: %s\n", method, endpoint, resp.StatusCode, string(respBody))

	return resp.StatusCode == http.StatusOK
}
