package config

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"telegram": map[string]interface{}{
			"token":         "",
			"owner_chat_id": 0,
		},
		"database": map[string]interface{}{
			"url": "focusboard.db",
		},
		"timezone": "local",
		"tick": map[string]interface{}{
			"interval": "60s",
		},
		"digest": map[string]interface{}{
			"time": "08:00",
		},
		"notify": map[string]interface{}{
			"push":         true,
			"rate_per_sec": 1,
		},
		"log": map[string]interface{}{
			"level":  "info",
			"format": "console",
		},
		"google": map[string]interface{}{
			"client_id":     "",
			"client_secret": "",
			"redirect_url":  "urn:ietf:wg:oauth:2.0:oob",
			"sync_interval": "15m",
		},
	}
}
