package main

import (
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ForgiaDev/mondialito/config"
	"github.com/ForgiaDev/mondialito/internal/bot"
	"github.com/ForgiaDev/mondialito/internal/db"
	"github.com/ForgiaDev/mondialito/internal/footballdata"
	"github.com/ForgiaDev/mondialito/internal/images"
)

func main() {
	cfg := config.LoadConfig()

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	log.Println("✅ Database ready")

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal("Failed to start bot:", err)
	}
	log.Printf("✅ Bot %s started", botAPI.Self.UserName)

	sports := footballdata.NewClient(cfg.FootballDataToken)
	render := images.NewRenderer(cfg.BackgroundPath, cfg.FontPath)
	sched := bot.NewScheduler()

	b := bot.New(bot.NewTelegramGateway(botAPI), store, sched, sports, render, cfg.GroupChatID, cfg.Location)

	now := time.Now().In(cfg.Location)
	sched.Add(bot.Task{
		FireAt: nextAt(now, cfg.DailyPostHour),
		Kind:   bot.TaskMatchday,
		Repeat: 24 * time.Hour,
	})
	sched.Add(bot.Task{
		FireAt: nextAt(now, 0),
		Kind:   bot.TaskLeaderboard,
		Repeat: 24 * time.Hour,
	})

	tick := 30 * time.Second
	if cfg.DebugScheduler {
		tick = time.Second
	}
	stop := sched.Run(tick, b.Dispatch)
	defer stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "poll_answer"}
	updates := botAPI.GetUpdatesChan(u)
	for update := range updates {
		if update.PollAnswer != nil {
			b.HandlePollAnswer(update.PollAnswer)
		} else if update.Message != nil {
			b.HandleMessage(update.Message)
		}
	}
}

// nextAt returns the next occurrence of hour o'clock after now.
func nextAt(now time.Time, hour int) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
