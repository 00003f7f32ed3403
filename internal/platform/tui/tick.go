// Package tui provides the Bubble Tea front end for Temporal Precision.
// It observes a game.Controller through snapshots and forwards keyboard and
// mouse triggers to it; it holds no game state of its own.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/temporal-precision/internal/game"
)

// noticeTTL is how long a status notice stays on screen.
const noticeTTL = 2500 * time.Millisecond

// SnapshotMsg carries a controller snapshot into the Bubble Tea loop.
type SnapshotMsg game.Snapshot

// subscriptionClosedMsg is sent once the controller stops publishing.
type subscriptionClosedMsg struct{}

// noticeExpiredMsg clears the notice with the matching sequence number.
type noticeExpiredMsg struct {
	seq int
}

// waitForSnapshot returns a command that waits for the next snapshot.
func waitForSnapshot(sub *game.Subscription) tea.Cmd {
	return func() tea.Msg {
		if sub == nil {
			return subscriptionClosedMsg{}
		}
		select {
		case snap := <-sub.Updates():
			return SnapshotMsg(snap)
		case <-sub.Done():
			return subscriptionClosedMsg{}
		}
	}
}

// expireNoticeCmd returns a command that clears notice seq after noticeTTL.
func expireNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
