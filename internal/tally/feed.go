// Package tally carries the live result feed over Redis: the latest
// snapshot is cached under well-known keys and every change is published on
// a pub/sub channel, so subscribers always get the full current set rather
// than deltas.
package tally

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"

	"github.com/sekolahvote/pemira-api/internal/domain"
)

const (
	channel       = "pemira:tally"
	metaKey       = "pemira:tally:meta"
	candidatesKey = "pemira:tally:candidates"
)

type snapshotMeta struct {
	Generation string `mapstructure:"generation"`
	TotalVotes int    `mapstructure:"total_votes"`
}

type Feed struct {
	client *redis.Client
}

func NewFeed(client *redis.Client) *Feed {
	return &Feed{
		client: client,
	}
}

// Publish caches the snapshot and fans it out to subscribers.
func (f *Feed) Publish(ctx context.Context, tally domain.Tally) error {
	payload, err := json.Marshal(tally)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	entries, err := json.Marshal(tally.Candidates)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	pipe := f.client.TxPipeline()
	pipe.HSet(ctx, metaKey,
		"generation", tally.Generation,
		"total_votes", tally.TotalVotes,
	)
	pipe.Set(ctx, candidatesKey, entries, 0)
	pipe.Publish(ctx, channel, payload)
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("pipe.Exec -> %w", err)
	}

	return nil
}

// Snapshot reads the last published tally from the cache. A cold cache
// (nothing published yet) comes back as an empty tally, not an error.
func (f *Feed) Snapshot(ctx context.Context) (domain.Tally, error) {
	meta, err := f.client.HGetAll(ctx, metaKey).Result()
	if err != nil {
		return domain.Tally{}, fmt.Errorf("f.client.HGetAll -> %w", err)
	}
	if len(meta) == 0 {
		return domain.Tally{}, nil
	}

	tally := domain.Tally{}
	if err = decodeMeta(meta, &tally); err != nil {
		return domain.Tally{}, err
	}

	raw, err := f.client.Get(ctx, candidatesKey).Result()
	if err != nil {
		if err == redis.Nil {
			return tally, nil
		}

		return domain.Tally{}, fmt.Errorf("f.client.Get -> %w", err)
	}

	if err = json.Unmarshal([]byte(raw), &tally.Candidates); err != nil {
		return domain.Tally{}, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return tally, nil
}

// Subscribe starts listening on the tally channel. The returned channel
// closes when stop is called or the context ends.
func (f *Feed) Subscribe(ctx context.Context) (<-chan domain.Tally, func()) {
	pubsub := f.client.Subscribe(ctx, channel)
	out := make(chan domain.Tally)

	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var tally domain.Tally
			if err := json.Unmarshal([]byte(msg.Payload), &tally); err != nil {
				continue
			}

			select {
			case out <- tally:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() {
		_ = pubsub.Close()
	}
}

// decodeMeta maps the redis hash (all string values) onto the tally with
// weak typing, so "42" lands in an int field.
func decodeMeta(meta map[string]string, tally *domain.Tally) error {
	var m snapshotMeta
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &m,
	})
	if err != nil {
		return fmt.Errorf("mapstructure.NewDecoder -> %w", err)
	}
	if err = decoder.Decode(meta); err != nil {
		return fmt.Errorf("decoder.Decode -> %w", err)
	}

	tally.Generation = m.Generation
	tally.TotalVotes = m.TotalVotes

	return nil
}
