package alerts

import (
	"context"
	"fmt"

	"github.com/citytransit-view/internal/common/discord"
	"github.com/citytransit-view/internal/common/logger"
	"github.com/citytransit-view/internal/transitview/feed"
	"github.com/citytransit-view/pkg/transit/models"
)

// Discord accepts at most 10 embeds per message
const maxEmbedsPerMessage = 10

type Sender interface {
	SendMessage(ctx context.Context, msg discord.WebhookMessage) error
}

// Notifier posts a Discord alert when a tick moves vehicles into delayed status
type Notifier struct {
	sender Sender
	logger logger.Logger
}

func NewNotifier(sender Sender, log logger.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		logger: log,
	}
}

// NewlyDelayed returns the vehicles in cur that are delayed but were not
// delayed in prev
func NewlyDelayed(prev, cur []models.Vehicle) []models.Vehicle {
	before := make(map[string]models.Status, len(prev))
	for _, v := range prev {
		before[v.ID] = v.Status
	}

	var out []models.Vehicle
	for _, v := range cur {
		if v.Status == models.StatusDelayed && before[v.ID] != models.StatusDelayed {
			out = append(out, v)
		}
	}
	return out
}

func (n *Notifier) Hook() feed.TickHook {
	return n.OnTick
}

func (n *Notifier) OnTick(ctx context.Context, tick feed.Tick) {
	delayed := NewlyDelayed(tick.Previous, tick.Current)
	if len(delayed) == 0 {
		return
	}

	for start := 0; start < len(delayed); start += maxEmbedsPerMessage {
		end := min(start+maxEmbedsPerMessage, len(delayed))
		msg := discord.WebhookMessage{}
		for _, v := range delayed[start:end] {
			msg.Embeds = append(msg.Embeds, delayEmbed(v, tick))
		}
		if err := n.sender.SendMessage(ctx, msg); err != nil {
			n.logger.Warn("Failed to send delay alert", "tick", tick.Seq, "vehicles", end-start, "error", err)
			return
		}
	}

	n.logger.Info("Delay alerts sent", "tick", tick.Seq, "vehicles", len(delayed))
}

func delayEmbed(v models.Vehicle, tick feed.Tick) discord.Embed {
	fields := map[string]interface{}{
		"Vehicle":   v.ID,
		"Next stop": v.NextStop,
		"Arrival":   models.FormatMinutes(v.ArrivalMinutes),
	}
	if d := models.FormatDelay(v.DelayMinutes); d != "" {
		fields["Delay"] = d
	}
	return discord.Embed{
		Title:       fmt.Sprintf("Route %s delayed", v.Route),
		Description: fmt.Sprintf("Route %s to %s is now running delayed", v.Route, v.Destination),
		Color:       discord.ColorForLevel("WARN"),
		Timestamp:   tick.At,
		Fields:      discord.FieldsFromMap(fields),
	}
}
