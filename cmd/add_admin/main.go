package main

import (
	"flag"
	"fmt"
	"os"

	"resultdesk/app/config"
	"resultdesk/app/database"
)

func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password")
	email := flag.String("email", "", "email for one-time code delivery (optional)")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Println("Usage: add_admin -username <name> -password <password> [-email <address>]")
		os.Exit(1)
	}

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()

	if err := database.CreateTables(db); err != nil {
		fmt.Printf("Error creating schema: %v\n", err)
		os.Exit(1)
	}

	if err := database.CreateAdmin(db, *username, *password, *email); err != nil {
		fmt.Printf("Error creating admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin created successfully: %s\n", *username)
}
