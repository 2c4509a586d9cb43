package client

import (
	"context"
	"fmt"
	"time"

	auth "github.com/go-mclib/protocol/auth"
	mc_crypto "github.com/go-mclib/protocol/crypto"
	session_server "github.com/go-mclib/protocol/java_protocol/session_server"
)

const defaultOfflineUsername = "WheelieBot"

func (c *Client) initializeAuth(ctx context.Context) error {
	if !c.OnlineMode {
		if c.Username == "" {
			c.Username = defaultOfflineUsername
			c.Logger.Printf("Warning: no username provided for offline mode, defaulting to '%s'", defaultOfflineUsername)
		}
		c.LoginData = auth.LoginData{Username: c.Username, UUID: mc_crypto.MinecraftSHA1(c.Username)}
		c.SessionClient = nil
		return nil
	}

	authClient := auth.NewClient(auth.AuthClientConfig{
		ClientID: c.ClientID,
		Username: c.Username,
	})
	loginCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	ld, err := authClient.Login(loginCtx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if c.Username != "" && c.Username != ld.Username {
		c.Logger.Printf("Warning: authenticated as '%s' but requested username was '%s'", ld.Username, c.Username)
	}
	c.LoginData = ld
	c.Username = ld.Username

	// the protocol module joins the session during the encryption handshake
	c.SessionClient = session_server.NewSessionServerClient()
	return nil
}
