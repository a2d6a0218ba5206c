package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/noodly/storefront/lib/mylog"
	"github.com/noodly/storefront/lib/mypublisher"
	"github.com/noodly/storefront/lib/mypubsub"
	"github.com/noodly/storefront/lib/mystore"
	"github.com/noodly/storefront/lib/mytime"
	"github.com/noodly/storefront/lib/myuuid"
	"github.com/noodly/storefront/services/cart"
	"github.com/noodly/storefront/services/catalog"
	"github.com/noodly/storefront/services/checkout"
	"github.com/noodly/storefront/services/ordergateway"
	"github.com/noodly/storefront/services/shopapi"
	"github.com/noodly/storefront/services/statustracker"
)

func main() {
	c := context.Background()

	cfg := shopapi.Config{
		BaseURL:     envOrDefault("SHOP_API_URL", "https://shopapi.aipsoft.com/app_request/get_data"),
		ShopID:      envOrDefault("SHOP_ID", "17"),
		AccessToken: envOrDefault("SHOP_ACCESS_TOKEN", "A#25t*4M"),
		AppID:       envOrDefault("SHOP_APP_ID", "16"),
		Language:    "english",
	}

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	caller := shopapi.NewCaller(cfg.BaseURL, mylog.New("shopapi"))

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()

	router := mux.NewRouter()

	catalogService := catalog.NewService(cfg, caller, nower, mylog.New("catalog"))
	catalogService.RegisterEndpoints(c, router)

	cartStore, cartStoreCleanup, err := mystore.New[cart.Cart](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer cartStoreCleanup()
	cartService := cart.NewService(cart.NewRepository(cartStore, mylog.New("cart")), mylog.New("cart"))
	cartService.RegisterEndpoints(c, router)

	statusStore, statusStoreCleanup, err := mystore.New[statustracker.OrderStatus](c)
	if err != nil {
		log.Fatalf("Error creating status store: %s", err)
	}
	defer statusStoreCleanup()
	tracker := statustracker.NewService(cfg, statustracker.DefaultTiming(), caller, statusStore, publisher, nower, mylog.New("statustracker"))
	err = tracker.CreateTopics(c)
	if err != nil {
		log.Fatalf("Error creating topics: %s", err)
	}

	recordStore, recordStoreCleanup, err := mystore.New[ordergateway.OrderRecord](c)
	if err != nil {
		log.Fatalf("Error creating order record store: %s", err)
	}
	defer recordStoreCleanup()
	customerStore, customerStoreCleanup, err := mystore.New[ordergateway.CustomerRef](c)
	if err != nil {
		log.Fatalf("Error creating customer store: %s", err)
	}
	defer customerStoreCleanup()
	gateway := ordergateway.NewService(cfg, caller, recordStore, customerStore, tracker, publisher, uuider, nower, mylog.New("ordergateway"))
	err = gateway.CreateTopics(c)
	if err != nil {
		log.Fatalf("Error creating topics: %s", err)
	}

	checkoutService := checkout.NewService(catalogService, cartService, gateway, tracker, uuider, nower, mylog.New("checkout"))
	checkoutService.RegisterEndpoints(c, router)

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}

func envOrDefault(name string, defaultValue string) string {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	return value
}
