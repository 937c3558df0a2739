package domain

import (
	"strings"
	"time"
)

// StoreConnection is a connected store. It lives until disconnect or restart.
type StoreConnection struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	AccessToken string      `json:"-"`
	Owner       string      `json:"owner,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	Client      StoreClient `json:"-"`
}

// ConnectRequest is the operator input for connecting a store
type ConnectRequest struct {
	StoreName   string `json:"storeName"`
	StoreURL    string `json:"storeUrl"`
	AccessToken string `json:"accessToken"`
	OwnerEmail  string `json:"ownerEmail"`
}

// StoreRecord is a persisted connection entry in the connections file
type StoreRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	AccessToken string    `json:"accessToken"`
	Owner       string    `json:"owner,omitempty"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// NormalizeStoreURL adds an https scheme when missing and drops trailing slashes
func NormalizeStoreURL(storeURL string) string {
	storeURL = strings.TrimSpace(storeURL)
	if storeURL == "" {
		return ""
	}
	if !strings.HasPrefix(storeURL, "http://") && !strings.HasPrefix(storeURL, "https://") {
		storeURL = "https://" + storeURL
	}
	return strings.TrimRight(storeURL, "/")
}
