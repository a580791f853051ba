//go:build integration

package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/daemon"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/infra"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/policy"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/usecase"
	"github.com/eliteGoblin/focusd/scroll_mon/test/fixtures"
)

var epoch = time.Date(2024, 6, 1, 21, 0, 0, 0, time.UTC)

var _ = Describe("Scroll Monitor", func() {
	var (
		tmpDir     string
		logPath    string
		stream     *fixtures.ScrollStream
		logger     *zap.Logger
		out        *bytes.Buffer
		dispatcher *infra.LogDispatcher
		surface    *infra.TerminalSurface
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "scrollguard-integration-*")
		Expect(err).NotTo(HaveOccurred())

		logPath = filepath.Join(tmpDir, "events.jsonl")
		stream = fixtures.NewScrollStream(epoch)
		logger = zap.NewNop()
		out = &bytes.Buffer{}
		dispatcher = infra.NewLogDispatcher(logger)
		surface = infra.NewTerminalSurface(out, 0, logger)
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	replay := func() *usecase.Session {
		Expect(stream.WriteFile(logPath)).To(Succeed())

		f, err := os.Open(logPath)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		events, err := infra.LoadEvents(f, epoch, logger)
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(HaveLen(len(stream.Events())))

		sched := infra.NewVirtualScheduler(epoch)
		session := usecase.NewSession(usecase.DefaultConfig(), policy.NewTargetStore(), sched, surface, dispatcher, logger)
		daemon.Replay(events, sched, session)
		return session
	}

	Describe("Replaying a recorded event log", func() {
		Context("when the user doom-scrolls a monitored app", func() {
			It("should warn three times and then send the user home", func() {
				stream.Foreground(policy.InstagramID).
					Scrolls(policy.InstagramID, 12, 300, 100*time.Millisecond)

				session := replay()

				Expect(session.Snapshot().TotalBursts).To(Equal(4))
				Expect(surface.Renders()).To(Equal(4))
				for _, remaining := range []string{"(3)", "(2)", "(1)", "(0)"} {
					Expect(out.String()).To(ContainSubstring(remaining))
				}

				reqs := dispatcher.Requests()
				Expect(reqs).To(HaveLen(1))
				Expect(reqs[0].TargetID).To(Equal(policy.InstagramID))
				Expect(reqs[0].IssuedAt).To(Equal(epoch.Add(3200 * time.Millisecond)))
			})
		})

		Context("when the user scrolls an unmonitored app", func() {
			It("should do nothing", func() {
				stream.Foreground("com.android.settings").
					Scrolls("com.android.settings", 30, 400, 50*time.Millisecond)

				session := replay()

				Expect(session.Snapshot().TotalBursts).To(BeZero())
				Expect(out.Len()).To(BeZero())
				Expect(dispatcher.Requests()).To(BeEmpty())
			})
		})

		Context("when the user scrolls slowly", func() {
			It("should never detect a burst", func() {
				stream.Scrolls(policy.ChromeID, 20, 500, 5001*time.Millisecond)

				session := replay()

				Expect(session.Snapshot().TotalBursts).To(BeZero())
				Expect(dispatcher.Requests()).To(BeEmpty())
			})
		})

		Context("when a pause interrupts a burst", func() {
			It("should restart the count", func() {
				stream.Scrolls(policy.WhatsAppID, 2, 200, 100*time.Millisecond).
					Pause(5001*time.Millisecond).
					Scrolls(policy.WhatsAppID, 1, 200, 0)

				session := replay()

				Expect(session.Snapshot().TotalBursts).To(BeZero())
			})
		})

		Context("when the budget is spent across apps", func() {
			It("should send the user home from the app that used the last attempt", func() {
				stream.Scrolls(policy.FacebookID, 9, 300, 100*time.Millisecond).
					Foreground(policy.ChromeID).
					Scrolls(policy.ChromeID, 3, 300, 100*time.Millisecond)

				replay()

				reqs := dispatcher.Requests()
				Expect(reqs).To(HaveLen(1))
				Expect(reqs[0].TargetID).To(Equal(policy.ChromeID))
			})
		})
	})

	Describe("Monitoring a live event log", func() {
		It("should run the HOME action on the real loop after the source ends", func() {
			stream.Scrolls(policy.InstagramID, 12, 300, 0)
			Expect(stream.WriteFile(logPath)).To(Succeed())

			monitor := daemon.NewMonitor(daemon.DefaultMonitorConfig(), logger)
			session := usecase.NewSession(usecase.DefaultConfig(), policy.NewTargetStore(), monitor, surface, dispatcher, logger)

			f, err := os.Open(logPath)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			events := monitor.NewEventChannel()
			go func() {
				defer close(events)
				_ = infra.ReadEvents(ctx, f, epoch, events, logger)
			}()

			start := time.Now()
			Expect(monitor.Run(ctx, events, session)).To(Succeed())

			Expect(time.Since(start)).To(BeNumerically(">=", 2*time.Second))
			Expect(dispatcher.Requests()).To(HaveLen(1))
			Expect(session.Snapshot().Enforcements).To(Equal(1))
		})
	})
})
