// Contention check for the purchase flow: fires many concurrent purchase
// attempts at one limited-stock offer and reports how many succeeded versus
// got a sold-out rejection. With stock R, exactly R attempts should succeed.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

var (
	baseURL    = flag.String("url", "http://localhost:8080", "server base URL")
	offerID    = flag.String("offer", "", "offer id to contend on")
	token      = flag.String("token", "", "bearer token of the test buyer")
	totalUsers = flag.Int("n", 200, "number of concurrent purchase attempts")
)

var httpClient *http.Client

func init() {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxIdleConnsPerHost = 2000
	t.MaxConnsPerHost = 2000
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

type apiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func main() {
	flag.Parse()
	if *offerID == "" || *token == "" {
		fmt.Println("usage: stress_tool -offer <uuid> -token <jwt> [-n 200]")
		return
	}

	fmt.Printf("Firing %d concurrent purchases at offer %s...\n", *totalUsers, *offerID)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	soldOutCount := 0
	otherCount := 0

	start := time.Now()
	for i := 0; i < *totalUsers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch attemptPurchase() {
			case "success":
				mu.Lock()
				successCount++
				mu.Unlock()
			case "sold_out":
				mu.Lock()
				soldOutCount++
				mu.Unlock()
			default:
				mu.Lock()
				otherCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	fmt.Printf("Done in %v\n", time.Since(start))
	fmt.Printf("  success:  %d\n", successCount)
	fmt.Printf("  sold out: %d\n", soldOutCount)
	fmt.Printf("  other:    %d\n", otherCount)
}

func attemptPurchase() string {
	body, _ := json.Marshal(map[string]interface{}{
		"oferta_id": *offerID,
		"tarjeta": map[string]string{
			"numero":     "4242424242424242",
			"nombre":     "Stress Tester",
			"expiracion": "12/30",
			"cvv":        "123",
		},
	})

	req, err := http.NewRequest(http.MethodPost, *baseURL+"/compras", bytes.NewReader(body))
	if err != nil {
		return "error"
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+*token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "error"
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var parsed apiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "error"
	}

	switch parsed.Code {
	case 0:
		return "success"
	case 20003: // offer sold out
		return "sold_out"
	default:
		return "other"
	}
}
