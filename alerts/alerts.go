// Package alerts notifies an operator over Telegram when quote requests
// start failing terminally. Best-effort and rate-limited; never on the
// request path.
package alerts

import (
	"fmt"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/RaghavSood/swaprouter/swaps"
)

// minInterval suppresses repeat alerts for the same pair.
const minInterval = 5 * time.Minute

type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// NewNotifier creates a Telegram notifier for the given bot token and chat.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &Notifier{
		bot:      bot,
		chatID:   chatID,
		lastSent: make(map[string]time.Time),
	}, nil
}

// QuoteFailed reports a retry-exhausted quote request. Sends at most one
// message per pair per minInterval.
func (n *Notifier) QuoteFailed(req swaps.SwapRequest, err error) {
	pair := fmt.Sprintf("%s@%d->%s@%d", req.FromToken.Symbol, req.FromChainID, req.ToToken.Symbol, req.ToChainID)

	n.mu.Lock()
	if last, ok := n.lastSent[pair]; ok && time.Since(last) < minInterval {
		n.mu.Unlock()
		return
	}
	n.lastSent[pair] = time.Now()
	n.mu.Unlock()

	text := fmt.Sprintf("⚠️ Quote unavailable for %s after all retries:\n%v", pair, err)
	go func() {
		if _, sendErr := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); sendErr != nil {
			log.Printf("alerts: failed to send telegram message: %v", sendErr)
		}
	}()
}
