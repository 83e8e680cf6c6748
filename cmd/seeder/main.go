package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/kindred/internal/compat"
	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/database"
	"github.com/mauv0809/kindred/internal/pubsub"
	"github.com/mauv0809/kindred/internal/source"
	"github.com/samber/lo"
)

var interestPool = []string{
	"hiking", "jazz", "climbing", "cooking", "vinyl", "yoga", "chess", "surfing",
	"board games", "photography", "running", "wine", "poetry", "cycling", "anime", "gardening",
}

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":      "kindred.db",
		"EVENTS_TOPIC": "dating-events",
	}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "GCP_PROJECT", "EVENTS_TOPIC"} {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			config[key] = value
		}
	}
	return config
}

// logPublisher is used when no Pub/Sub project is configured.
type logPublisher struct{}

func (logPublisher) SendMessage(ctx context.Context, topic string, data any) error {
	log.Debug("Skipping publish, no GCP_PROJECT set", "topic", topic)
	return nil
}

func main() {
	users := flag.Int("users", 20, "number of users to create")
	likeRate := flag.Float64("like-rate", 0.5, "probability that a swipe is a like")
	messages := flag.Int("messages", 10, "number of messages to send")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	log.Info("Starting database seeder...", "users", *users, "seed", *seed)
	cfg := loadConfig()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(*seed))

	db, dbTeardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer dbTeardown()

	var pub source.Publisher = logPublisher{}
	if projectID := cfg["GCP_PROJECT"]; projectID != "" {
		client, err := pubsub.New(ctx, projectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer client.Close()
		pub = client
	}
	src := source.New(dating.New(db), pub, cfg["EVENTS_TOPIC"])

	startTime := time.Now()
	signs := compat.Signs()
	ids := make([]string, 0, *users)
	for i := 0; i < *users; i++ {
		profile := dating.UserProfile{
			UserID:      fmt.Sprintf("seed-user-%03d", i+1),
			ZodiacSign:  string(signs[rng.Intn(len(signs))]),
			Interests:   pickInterests(rng),
			PushAddress: fmt.Sprintf("seed-token-%03d", i+1),
		}
		if err := src.CreateProfile(ctx, profile); err != nil {
			log.Fatalf("Failed to create profile: %s", err)
		}
		ids = append(ids, profile.UserID)
	}
	log.Info("Created profiles", "count", len(ids))

	swipes := 0
	for _, from := range ids {
		for _, to := range ids {
			if from == to || rng.Float64() > 0.3 {
				continue
			}
			action := dating.ActionPass
			if rng.Float64() < *likeRate {
				action = dating.ActionLike
			}
			if _, err := src.CreateSwipe(ctx, dating.Swipe{SwiperID: from, TargetID: to, Action: action}); err != nil {
				log.Fatalf("Failed to create swipe: %s", err)
			}
			swipes++
		}
	}
	log.Info("Created swipes", "count", swipes)

	for i := 0; i < *messages && len(ids) > 1; i++ {
		pair := lo.Samples(ids, 2)
		text := ""
		if rng.Intn(3) > 0 {
			text = fmt.Sprintf("Hey %s!", pair[1])
		}
		if _, err := src.CreateMessage(ctx, dating.Message{SenderID: pair[0], ReceiverID: pair[1], Text: text}); err != nil {
			log.Fatalf("Failed to create message: %s", err)
		}
	}
	log.Info("Created messages", "count", *messages)

	log.Info("Seeding finished.", "duration", time.Since(startTime))
}

func pickInterests(rng *rand.Rand) []string {
	n := rng.Intn(6)
	if n == 0 {
		return nil
	}
	shuffled := lo.Shuffle(append([]string(nil), interestPool...))
	return shuffled[:n]
}
