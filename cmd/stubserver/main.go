// Command stubserver runs the in-memory development API server.
package main

import (
	"flag"
	"log"

	"github.com/devpal/newbase/internal/stubserver"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	secret := flag.String("secret", "dev-secret", "JWT signing secret")
	seed := flag.Bool("seed", true, "seed a demo account with notifications")
	flag.Parse()

	store := stubserver.NewStore()
	if *seed {
		user, err := store.SeedDemo()
		if err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
		log.Printf("demo account: %s / demo-password (id %s)", user.Email, user.ID)
	}

	router := stubserver.NewRouter(store, stubserver.DefaultTokenConfig(*secret))
	log.Printf("stub API listening on %s", *addr)
	if err := router.Run(*addr); err != nil {
		log.Fatal(err)
	}
}
