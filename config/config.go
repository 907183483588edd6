package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken     string
	GroupChatID       int64
	FootballDataToken string
	DBPath            string
	FontPath          string
	BackgroundPath    string
	Location          *time.Location
	DailyPostHour     int
	DebugScheduler    bool
}

// parseGroupChatID validates GROUP_CHAT_ID. A zero or unparsable id would make
// every announcement silently go nowhere, so the bot refuses to start on it.
func parseGroupChatID(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("GROUP_CHAT_ID is not set")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("GROUP_CHAT_ID %q is not a number", raw)
	}
	if id == 0 {
		return 0, fmt.Errorf("GROUP_CHAT_ID must not be zero")
	}
	return id, nil
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, falling back to environment variables")
	}

	groupChatID, err := parseGroupChatID(os.Getenv("GROUP_CHAT_ID"))
	if err != nil {
		log.Fatalf("🛑 %v", err)
	}

	loc := time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		} else {
			log.Printf("⚠️ Unknown TIMEZONE %q, using local time", tz)
		}
	}

	postHour := 7
	if val, ok := os.LookupEnv("DAILY_POST_HOUR"); ok {
		if h, err := strconv.Atoi(val); err == nil && h >= 0 && h < 24 {
			postHour = h
		}
	}

	debugScheduler := false
	if val, ok := os.LookupEnv("DEBUG_SCHEDULER"); ok {
		// "1" or "true" switches the scheduler to a fast tick
		debugScheduler, _ = strconv.ParseBool(val)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "resources/mondialito.db"
	}

	return &Config{
		TelegramToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		GroupChatID:       groupChatID,
		FootballDataToken: os.Getenv("FOOTBALL_DATA_TOKEN"),
		DBPath:            dbPath,
		FontPath:          os.Getenv("FONT_PATH"),
		BackgroundPath:    os.Getenv("BACKGROUND_PATH"),
		Location:          loc,
		DailyPostHour:     postHour,
		DebugScheduler:    debugScheduler,
	}
}
