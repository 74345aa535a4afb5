package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"traveldest/client/models"
)

const (
	maxTitleLength   = 50
	minContentLength = 100
)

// LoadAppConfig reads config.yaml and applies .env overrides for the
// values that differ between environments.
func LoadAppConfig(path string) (models.Config, error) {
	var config models.Config

	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, err
	}

	// .env is optional; a missing file just means no overrides.
	if err := godotenv.Load(".env"); err == nil {
		log.Println("Loaded overrides from .env")
	}
	if v := os.Getenv("API_URL"); v != "" {
		config.Backend.BaseURL = v
	}
	if v := os.Getenv("CACHE_ADDR"); v != "" {
		config.Cache.Addr = v
	}
	if v := os.Getenv("CACHE_PASSWORD"); v != "" {
		config.Cache.Password = v
	}

	if config.Backend.BaseURL == "" {
		return config, errors.New("backend base_url is not configured")
	}
	return config, nil
}

func InitLogger(path string) {
	if path == "" {
		path = "client.log"
	}
	f, _ := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// checkRegistration validates the registration form before anything
// reaches the network.
func checkRegistration(reg models.Registration, confirmPassword string) error {
	if reg.FirstName == "" || reg.LastName == "" || reg.Username == "" ||
		reg.Password == "" || reg.Country == "" {
		return errors.New("all registration fields are required")
	}
	if reg.Password != confirmPassword {
		return errors.New("Passwords do not match")
	}
	return nil
}

// checkPost validates the add-post form.
func checkPost(post models.Post) error {
	if post.Title == "" {
		return errors.New("title cannot be empty")
	}
	if len(post.Title) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTitleLength)
	}
	if len(post.Content) < minContentLength {
		return fmt.Errorf("content must be at least %d characters", minContentLength)
	}
	if post.Country.Name == "" {
		return errors.New("country cannot be empty")
	}
	if post.City == "" {
		return errors.New("city cannot be empty")
	}
	u, err := url.ParseRequestURI(post.MainImage)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("main image must be a valid http(s) URL")
	}
	return nil
}
