package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	log "github.com/sirupsen/logrus"

	"FlowScope/internal/config"
	"FlowScope/internal/export"
	fsnet "FlowScope/internal/net"
	"FlowScope/internal/state"
	"FlowScope/internal/ui"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	// A feed URL on the command line overrides config and discovery.
	feedURL := cfg.Feed.URL
	if len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "ws://") {
		feedURL = os.Args[1]
	}

	st := state.NewDiagramState()
	sess := state.NewSession()
	view := ui.NewDiagramView(st)

	var (
		clientMu sync.Mutex
		client   *fsnet.Client
	)

	connect := func(url string) {
		c := fsnet.NewClient(url)
		c.OnStatus = view.SetStatus
		c.OnMessage = func(msg fsnet.Message) {
			// Feed messages arrive on the read goroutine; state
			// mutation happens on the UI loop only.
			fyne.Do(func() {
				applyMessage(st, sess, msg)
			})
		}

		clientMu.Lock()
		if client != nil {
			client.Close()
		}
		client = c
		clientMu.Unlock()

		go func() {
			time.Sleep(500 * time.Millisecond) // give the UI time to launch
			if err := c.Connect(); err != nil {
				log.WithError(err).Error("feed connection failed")
				view.SetStatus(fmt.Sprintf("Connection failed: %v", err))
			}
		}()
	}

	if feedURL != "" {
		connect(feedURL)
	} else if cfg.Feed.Discover {
		go discoverFeed(view, connect)
	} else {
		view.SetStatus("No feed configured")
	}

	if cfg.Feed.Share {
		startSharing(cfg.Feed.SharePort, st, sess, view)
	}

	actions := ui.Actions{
		OnExport: func() {
			path := filepath.Join(cfg.Export.Dir,
				fmt.Sprintf("flowscope-%s.pdf", time.Now().Format("20060102-150405")))
			snap := st.Snapshot()
			go func() {
				if err := export.ExportPDF(path, snap); err != nil {
					log.WithError(err).Error("PDF export failed")
					view.SetStatus(fmt.Sprintf("Export failed: %v", err))
					return
				}
				view.SetStatus("Exported " + path)
			}()
		},
		OnClear: func() {
			st.Clear()
			view.SetStatus("Diagram cleared")
		},
		OnReconnect: func() {
			clientMu.Lock()
			c := client
			clientMu.Unlock()
			if c == nil {
				view.SetStatus("No feed to reconnect to")
				return
			}
			view.SetStatus("Reconnecting to " + c.URL())
			go func() {
				if err := c.Connect(); err != nil {
					view.SetStatus(fmt.Sprintf("Reconnect failed: %v", err))
				}
			}()
		},
	}

	ui.RunApp("FlowScope", cfg.Window.Width, cfg.Window.Height, view, actions)
}

// applyMessage folds one feed message into the diagram state. Runs on
// the UI loop.
func applyMessage(st *state.DiagramState, sess *state.Session, msg fsnet.Message) {
	if msg.Seq > 0 {
		sess.Observe(msg.Seq)
	}
	switch msg.Type {
	case fsnet.MsgTopology:
		st.SetTopology(msg.Senders, msg.AccessPoints)
	case fsnet.MsgRemoveSender:
		st.RemoveSender(msg.SenderID)
	case fsnet.MsgClear:
		st.Clear()
	}
}

// discoverFeed browses the LAN and connects to the first feed found.
func discoverFeed(view *ui.DiagramView, connect func(string)) {
	view.SetStatus("Looking for a topology feed on the LAN...")

	var once sync.Once
	err := fsnet.Discover(func(addr string) {
		once.Do(func() {
			url := fmt.Sprintf("ws://%s/feed", addr)
			log.WithField("url", url).Info("discovered topology feed")
			connect(url)
		})
	})
	if err != nil {
		log.WithError(err).Warn("mDNS discovery failed")
		view.SetStatus(fmt.Sprintf("Discovery failed: %v", err))
	}
}

// startSharing re-serves the current topology to other viewers and
// advertises the endpoint over mDNS.
func startSharing(port int, st *state.DiagramState, sess *state.Session, view *ui.DiagramView) {
	host := fsnet.NewHost()
	host.Snapshot = func() fsnet.Message {
		return snapshotMessage(st, sess)
	}

	st.Subscribe(func(state.Change) {
		// Broadcasting does network writes; keep them off the UI loop.
		msg := snapshotMessage(st, sess)
		go host.Broadcast(msg)
	})

	go func() {
		if err := host.Listen(port); err != nil {
			log.WithError(err).Error("share host failed")
			view.SetStatus(fmt.Sprintf("Sharing unavailable: %v", err))
		}
	}()

	if _, err := fsnet.Advertise(port); err != nil {
		log.WithError(err).Warn("mDNS advertise failed")
	}

	if ip, err := fsnet.OutgoingIP(); err == nil {
		log.Infof("Sharing topology at ws://%s:%d/feed", ip, port)
	}
}

// snapshotMessage packages the current diagram for the share feed.
func snapshotMessage(st *state.DiagramState, sess *state.Session) fsnet.Message {
	snap := st.Snapshot()
	return fsnet.Message{
		Type:         fsnet.MsgTopology,
		Site:         sess.SiteID(),
		Seq:          sess.NextSeq(),
		Senders:      snap.Arrows,
		AccessPoints: snap.AccessPoints,
	}
}
