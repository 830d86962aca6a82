package webhook

import (
	"context"
	"sync"
	"time"

	"tierlist_backend/internal/logger"
	"tierlist_backend/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	Sent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_notifications_sent_total",
		Help: "Outbound webhook notifications delivered",
	})
	Failed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_notifications_failed_total",
		Help: "Outbound webhook notifications that failed to deliver",
	})
	Suppressed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_notifications_suppressed_total",
		Help: "Notifications suppressed by the dedup cooldown or empty tier list",
	})
)

func init() {
	prometheus.MustRegister(Sent, Failed, Suppressed)
}

const sendTimeout = 15 * time.Second

// Dispatcher turns tier writes into best-effort webhook notifications.
//
// Writes for the same player within the debounce window coalesce into one
// send (the timer resets on each write), and a send is suppressed when an
// identical one for that player went out within the cooldown. The tier list
// is resolved at fire time, so the single send always carries the latest
// state. Delivery failures are logged and never propagate to the caller:
// the tier write already succeeded.
type Dispatcher struct {
	players repository.PlayerStore
	tiers   repository.TierStore
	sender  Sender
	clock   Clock

	debounce time.Duration
	cooldown time.Duration

	mu       sync.Mutex
	pending  map[int64]*pendingSend // player id -> debounce timer
	lastSent map[int64]time.Time    // player id -> last successful send
}

// pendingSend is one armed debounce timer. gen increments on every write so
// a timer that expired right before being superseded cannot fire a second
// notification for the same batch.
type pendingSend struct {
	timer Timer
	gen   uint64
}

func NewDispatcher(players repository.PlayerStore, tiers repository.TierStore, sender Sender, clock Clock, debounce, cooldown time.Duration) *Dispatcher {
	return &Dispatcher{
		players:  players,
		tiers:    tiers,
		sender:   sender,
		clock:    clock,
		debounce: debounce,
		cooldown: cooldown,
		pending:  make(map[int64]*pendingSend),
		lastSent: make(map[int64]time.Time),
	}
}

// Notify schedules a notification for a player after a successful tier
// write. Safe to call for any player; players without a usable webhook URL
// are filtered at fire time.
func (d *Dispatcher) Notify(playerID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pruneLocked()

	gen := uint64(1)
	if p, ok := d.pending[playerID]; ok {
		p.timer.Stop()
		gen = p.gen + 1
	}
	entry := &pendingSend{gen: gen}
	entry.timer = d.clock.AfterFunc(d.debounce, func() {
		d.fire(playerID, gen)
	})
	d.pending[playerID] = entry
}

// pruneLocked drops stale cooldown entries so the map stays bounded.
func (d *Dispatcher) pruneLocked() {
	cutoff := d.clock.Now().Add(-d.cooldown)
	for id, ts := range d.lastSent {
		if ts.Before(cutoff) {
			delete(d.lastSent, id)
		}
	}
}

func (d *Dispatcher) fire(playerID int64, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[playerID]
	if !ok || p.gen != gen {
		// a later write superseded this batch
		d.mu.Unlock()
		return
	}
	delete(d.pending, playerID)
	last, sentBefore := d.lastSent[playerID]
	now := d.clock.Now()
	d.mu.Unlock()

	if sentBefore && now.Sub(last) < d.cooldown {
		Suppressed.Inc()
		logger.Debug("webhook suppressed by cooldown", "player_id", playerID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	player, err := d.players.PlayerByID(ctx, playerID)
	if err != nil {
		logger.Error("webhook: player lookup failed", "player_id", playerID, "error", err)
		return
	}
	if player.WebhookURL == "" || !ValidURL(player.WebhookURL) {
		return
	}

	tiers, err := d.tiers.TiersByPlayer(ctx, playerID)
	if err != nil {
		logger.Error("webhook: tier lookup failed", "player_id", playerID, "error", err)
		return
	}
	if len(tiers) == 0 {
		// nothing to say
		Suppressed.Inc()
		return
	}

	msg := Message{
		Username:    player.Username,
		Avatar:      player.Avatar,
		CombatTitle: player.CombatTitle,
		Tiers:       tiers,
	}

	if err := d.sender.Send(ctx, player.WebhookURL, msg); err != nil {
		Failed.Inc()
		logger.Error("webhook delivery failed", "player_id", playerID, "error", err)
		return
	}

	Sent.Inc()
	d.mu.Lock()
	d.lastSent[playerID] = d.clock.Now()
	d.mu.Unlock()
}
