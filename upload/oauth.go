package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// credentials resolves an OAuth token for the upload scope: load the cached
// token, refresh it if stale, or walk the interactive authorization flow.
// The resulting token is written back to tokenFile for the next run.
func credentials(ctx context.Context, clientSecretFile, tokenFile string) (*oauth2.Config, *oauth2.Token, error) {
	data, err := os.ReadFile(clientSecretFile)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read client secret file %s (download it from Google Cloud Console): %w", clientSecretFile, err)
	}

	cfg, err := google.ConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}

	tok, err := tokenFromFile(tokenFile)
	if err == nil {
		// TokenSource refreshes expired tokens transparently when a refresh
		// token is present.
		fresh, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			if fresh.AccessToken != tok.AccessToken {
				saveToken(tokenFile, fresh)
			}
			return cfg, fresh, nil
		}
		log.Printf("Stored token unusable: %v. Re-authorizing.", err)
	}

	tok, err = authorize(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	saveToken(tokenFile, tok)
	return cfg, tok, nil
}

// authorize runs the console half of the installed-app flow: print the
// consent URL, read the code back, exchange it for a token.
func authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange authorization code: %w", err)
	}
	return tok, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		log.Printf("Unable to cache oauth token: %v", err)
		return
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		log.Printf("Unable to write oauth token: %v", err)
	}
}
