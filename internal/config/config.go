package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything a run needs.
type Config struct {
	TelegramToken  string
	TelegramChatID int64
	PostExisting   bool
	StateFile      string

	SessionNetInfoURL string
	SessionNetBaseURL string

	EventSiteSitemapURL    string
	EventSiteListingURL    string
	EventSitePermalinkPath string
	EventSiteKeywords      []string

	FetchUserAgent string
	FetchTimeout   time.Duration
	FetchDelay     time.Duration
	FetchNoRobots  bool
}

// Load reads configuration. configFile may be empty; a missing default
// config file is not an error, env vars and defaults still apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("state_file", "state.json")
	v.SetDefault("post_existing", false)
	v.SetDefault("sessionnet.info_url", "https://sessionnet.owl-it.de/witzenhausen/bi/info.asp")
	v.SetDefault("sessionnet.base_url", "https://sessionnet.owl-it.de/witzenhausen/bi/")
	v.SetDefault("eventsite.sitemap_url", "https://www.witzenhausen.de/sitemap.xml")
	v.SetDefault("eventsite.listing_url", "https://www.witzenhausen.de/veranstaltungen/")
	v.SetDefault("eventsite.permalink_path", "/veranstaltungen/")
	v.SetDefault("eventsite.keywords", []string{"event", "veranstaltung"})
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.delay", 500*time.Millisecond)
	v.SetDefault("fetch.no_robots", false)

	// Historical environment names, kept for cron compatibility.
	_ = v.BindEnv("telegram.token", "TG_TOKEN")
	_ = v.BindEnv("telegram.chat_id", "TG_CHAT_ID")
	_ = v.BindEnv("post_existing", "POST_EXISTING")
	_ = v.BindEnv("state_file", "STATE_FILE")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("stadtticker")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/stadtticker")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	return &Config{
		TelegramToken:          v.GetString("telegram.token"),
		TelegramChatID:         v.GetInt64("telegram.chat_id"),
		PostExisting:           v.GetBool("post_existing"),
		StateFile:              v.GetString("state_file"),
		SessionNetInfoURL:      v.GetString("sessionnet.info_url"),
		SessionNetBaseURL:      v.GetString("sessionnet.base_url"),
		EventSiteSitemapURL:    v.GetString("eventsite.sitemap_url"),
		EventSiteListingURL:    v.GetString("eventsite.listing_url"),
		EventSitePermalinkPath: v.GetString("eventsite.permalink_path"),
		EventSiteKeywords:      v.GetStringSlice("eventsite.keywords"),
		FetchUserAgent:         v.GetString("fetch.user_agent"),
		FetchTimeout:           v.GetDuration("fetch.timeout"),
		FetchDelay:             v.GetDuration("fetch.delay"),
		FetchNoRobots:          v.GetBool("fetch.no_robots"),
	}, nil
}

// ValidateDelivery checks that real delivery is possible. Dry runs skip
// this.
func (c *Config) ValidateDelivery() error {
	if c.TelegramToken == "" || c.TelegramChatID == 0 {
		return fmt.Errorf("TG_TOKEN and TG_CHAT_ID are required for delivery")
	}
	return nil
}
