package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	baseURL      = "http://localhost:8080/orders"
	captureTopic = "payments.captured"
)

type placeOrder struct {
	SellerID     string `json:"seller_id"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	Requirements string `json:"requirements"`
}

type order struct {
	ID    string `json:"id"`
	Price struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	} `json:"price"`
}

type paymentCaptured struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

type actor struct {
	id   string
	role string
}

func randomString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func do(ctx context.Context, method, url string, who actor, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", who.id)
	req.Header.Set("X-Actor-Role", who.role)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s -> %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func transition(ctx context.Context, orderID string, who actor, action string) error {
	return do(ctx, http.MethodPost, baseURL+"/"+orderID+"/transitions", who, map[string]string{"action": action}, nil)
}

// runOrder walks one order through placement, capture and a random ending.
func runOrder(ctx context.Context, writer *kafka.Writer) error {
	buyer := actor{id: "buyer_" + randomString(5), role: "buyer"}
	seller := actor{id: "seller_" + randomString(5), role: "seller"}

	var o order
	err := do(ctx, http.MethodPost, baseURL, buyer, placeOrder{
		SellerID:     seller.id,
		Amount:       fmt.Sprintf("%d.00", rand.Intn(5000)+500),
		Currency:     "RUB",
		Requirements: "Logo " + randomString(8),
	}, &o)
	if err != nil {
		return err
	}

	data, _ := json.Marshal(paymentCaptured{
		OrderID:   o.ID,
		PaymentID: uuid.NewString(),
		Amount:    o.Price.Amount,
		Currency:  o.Price.Currency,
	})
	if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(o.ID), Value: data}); err != nil {
		return err
	}
	// capture is applied asynchronously
	time.Sleep(500 * time.Millisecond)

	if err := transition(ctx, o.ID, seller, "accept_order"); err != nil {
		return err
	}
	if err := transition(ctx, o.ID, seller, "mark_delivered"); err != nil {
		return err
	}
	if rand.Intn(4) == 0 {
		return transition(ctx, o.ID, buyer, "request_refund")
	}
	return transition(ctx, o.ID, buyer, "validate_delivery")
}

func main() {
	writer := &kafka.Writer{
		Addr:     kafka.TCP("localhost:9092"),
		Topic:    captureTopic,
		Balancer: &kafka.Hash{},
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	for {
		select {
		case <-ticker.C:
			if err := runOrder(ctx, writer); err != nil {
				log.Println("order run failed:", err)
				continue
			}
			log.Println("order completed")
		case <-ctx.Done():
			return
		}
	}
}
