// Turn viewer - follows an interview as it happens.
// Consumes the turn and sentiment topics from Kafka, prints each event and
// relays it to browsers over WebSocket. With -file it prints a saved
// session record instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"ai-interview-service/internal/models"
	"ai-interview-service/internal/observability/logging"
	"ai-interview-service/internal/transcript"
)

func main() {
	addr := flag.String("addr", ":8081", "HTTP listen address for the WebSocket feed")
	brokers := flag.String("brokers", "localhost:9092", "Kafka brokers (comma-separated)")
	topicTurns := flag.String("topic-turns", "interview.turns", "Turn events topic")
	topicSentiment := flag.String("topic-sentiment", "interview.sentiment", "Sentiment events topic")
	since := flag.Duration("since", time.Hour, "Replay events newer than this")
	file := flag.String("file", "", "Print a saved session record and exit")
	flag.Parse()

	logCfg := logging.DefaultConfig()
	logCfg.Format = "console"
	logging.Init(logCfg)

	if *file != "" {
		rec, err := transcript.Load(*file)
		if err != nil {
			log.Fatal().Err(err).Str("file", *file).Msg("Failed to load session record")
		}
		printRecord(os.Stdout, rec)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := newHub()
	go hub.run(ctx)

	from := time.Now().Add(-*since)
	go consume(ctx, hub, strings.Split(*brokers, ","), *topicTurns, from)
	go consume(ctx, hub, strings.Split(*brokers, ","), *topicSentiment, from)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler(hub))
	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("addr", *addr).
		Str("brokers", *brokers).
		Strs("topics", []string{*topicTurns, *topicSentiment}).
		Msg("Turn viewer starting")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server error")
	}
}

func consume(ctx context.Context, hub *Hub, brokers []string, topic string, since time.Time) {
	// Partition reader without a consumer group; a viewer never commits.
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	if err := reader.SetOffsetAt(ctx, since); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("Could not seek, reading from current offset")
	}

	log.Info().Str("topic", topic).Time("since", since).Msg("Consuming")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("topic", topic).Msg("Kafka read error")
			time.Sleep(time.Second)
			continue
		}

		line, err := formatMessage(msg.Value)
		if err != nil {
			log.Warn().Err(err).Str("topic", topic).Msg("Skipping undecodable event")
			continue
		}
		fmt.Println(line)
		hub.Broadcast(msg.Value)
	}
}

// formatMessage renders a turn or sentiment event as one console line.
func formatMessage(payload []byte) (string, error) {
	var head struct {
		EventType string `json:"eventType"`
	}
	if err := json.Unmarshal(payload, &head); err != nil {
		return "", err
	}

	switch head.EventType {
	case models.EventTurnInterviewer, models.EventTurnCandidate:
		var e models.TurnEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return "", err
		}
		return formatTurn(e), nil
	case models.EventSentiment:
		var e models.SentimentEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return "", err
		}
		return formatSentiment(e), nil
	default:
		return "", fmt.Errorf("unknown event type %q", head.EventType)
	}
}

func formatTurn(e models.TurnEvent) string {
	return fmt.Sprintf("[%s] %s: %s", e.TurnID, e.Role.Label(), e.Content)
}

func formatSentiment(e models.SentimentEvent) string {
	return fmt.Sprintf("[%s]   sentiment %+.2f (%s) face=%+.2f voice=%+.2f text=%+.2f emotion=%s",
		e.TurnID, e.Score, e.Label, e.FaceScore, e.VoiceScore, e.TextScore, e.DominantEmotion)
}

func printRecord(w io.Writer, rec transcript.Record) {
	fmt.Fprintf(w, "Session %s (%s, %s)\n", rec.SessionID, rec.CloseReason, rec.EndedAt.Sub(rec.StartedAt).Round(time.Second))

	byTurn := make(map[string]models.SentimentEvent, len(rec.Sentiment))
	for _, s := range rec.Sentiment {
		byTurn[s.TurnID] = s
	}
	for _, t := range rec.Turns {
		fmt.Fprintln(w, formatTurn(t))
		if s, ok := byTurn[t.TurnID]; ok {
			fmt.Fprintln(w, formatSentiment(s))
		}
	}
}
