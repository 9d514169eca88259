// Command paymentd runs the payment bridge as a standalone service.  It
// exposes a single endpoint, POST /create-payment-intent, for deployments
// that keep card processing on its own host instead of the main API
// server.  Configuration comes from the environment (a .env file is
// loaded when present).
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/avlonti/restobook/internal/payment"
)

func main() {
	_ = godotenv.Load()

	secretKey := os.Getenv("STRIPE_SECRET_KEY")
	if secretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is required")
	}
	currency := os.Getenv("PAYMENT_CURRENCY")
	port := os.Getenv("PAYMENTD_PORT")
	if port == "" {
		port = "4242"
	}

	bridge := payment.NewBridge(secretKey, currency)

	// The handler enforces the method itself so anything but POST gets an
	// explicit 405 instead of mux's default 404.
	r := mux.NewRouter()
	r.HandleFunc("/create-payment-intent", payment.IntentHandler(bridge))

	log.Printf("paymentd listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
