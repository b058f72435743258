package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func show(label string, resp *http.Response, body []byte, err error) {
	if err != nil {
		color.Red("%s failed: %v", label, err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	prettyPrint(parsed)
}

func main() {
	color.Cyan("🚀 Starting Shopping Assistant API Smoke Test\n")
	sessionID := "smoke-test-session"

	// 1. Search turn: message with extracted unit + volume filters
	color.Yellow("\n[CHAT] 1. Search turn")
	resp, body, err := sendRequest("POST", "/chat/v1/message", map[string]interface{}{
		"session_id": sessionID,
		"message":    "buscar leite em caixa",
	})
	show("search turn", resp, body, err)

	// 2. Selection turn: bare item id from the presented list
	color.Yellow("\n[CHAT] 2. Selection turn")
	resp, body, err = sendRequest("POST", "/chat/v1/message", map[string]interface{}{
		"session_id": sessionID,
		"message":    "18135",
	})
	show("selection turn", resp, body, err)

	// 3. Quantity turn: completes the pending selection into the cart
	color.Yellow("\n[CHAT] 3. Quantity turn")
	resp, body, err = sendRequest("POST", "/chat/v1/message", map[string]interface{}{
		"session_id": sessionID,
		"message":    "3",
	})
	show("quantity turn", resp, body, err)

	// 4. Direct catalog search, outside any conversation
	color.Yellow("\n[CATALOG] 4. Direct tiered search")
	resp, body, err = sendRequest("POST", "/catalog/v1/search", map[string]interface{}{
		"query": "café 500g",
		"limit": 5,
	})
	show("catalog search", resp, body, err)

	// 5. Cart readback
	color.Yellow("\n[CART] 5. Cart readback")
	resp, body, err = sendRequest("GET", "/cart/v1/"+sessionID, nil)
	show("cart readback", resp, body, err)

	color.Cyan("\n✅ Smoke test finished")
}
