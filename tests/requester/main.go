package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const baseURL = "http://localhost:8080/orders/"

func main() {
	orderID := flag.String("order", "", "existing order id to poll")
	actorID := flag.String("actor", "ops-1", "caller id")
	role := flag.String("role", "operator", "caller role")
	flag.Parse()

	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(func() { doRequest(*orderID, *actorID, *role) })
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func randomID() string {
	const hex = "0123456789abcdef"
	b := make([]byte, 36)
	for i := range b {
		switch i {
		case 8, 13, 18, 23:
			b[i] = '-'
		default:
			b[i] = hex[rand.Intn(len(hex))]
		}
	}
	return string(b)
}

func doRequest(orderID, actorID, role string) {
	id := orderID
	if id == "" || rand.Intn(5) == 0 {
		id = randomID()
	}

	url := baseURL + id
	if rand.Intn(3) == 0 {
		url += "/transitions"
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		fmt.Println("request error:", err)
		return
	}
	req.Header.Set("X-Actor-ID", actorID)
	req.Header.Set("X-Actor-Role", role)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("request error:", err)
		return
	}
	fmt.Println("GET", url, "->", resp.Status)
	resp.Body.Close()
}
