package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/huddle/internal/model"
	"basegraph.app/huddle/internal/service"
	"basegraph.app/huddle/internal/store"
)

var _ = Describe("RosterService", func() {
	var (
		svc service.RosterService
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		svc = service.NewRosterService(store.NewMemoryRosterStore())
	})

	Describe("Add", func() {
		It("assigns a fresh id and appends in order", func() {
			a, err := svc.Add(ctx, model.ParticipantFields{Name: "Ada", Position: "CTO"})
			Expect(err).NotTo(HaveOccurred())
			b, err := svc.Add(ctx, model.ParticipantFields{Name: "Grace", Position: "Engineer"})
			Expect(err).NotTo(HaveOccurred())

			Expect(a.ID).To(BeNumerically(">", 0))
			Expect(b.ID).To(BeNumerically(">", a.ID))

			roster, err := svc.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(roster).To(Equal([]model.Participant{*a, *b}))
		})
	})

	Describe("Update", func() {
		It("replaces every field and keeps the position", func() {
			a, _ := svc.Add(ctx, model.ParticipantFields{Name: "Ada"})
			b, _ := svc.Add(ctx, model.ParticipantFields{Name: "Grace"})

			updated, err := svc.Update(ctx, a.ID, model.ParticipantFields{Name: "Ada L.", Position: "Countess", PictureURL: "https://x/a.png"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(a.ID))

			roster, _ := svc.List(ctx)
			Expect(roster).To(HaveLen(2))
			Expect(roster[0]).To(Equal(model.Participant{ID: a.ID, Name: "Ada L.", Position: "Countess", PictureURL: "https://x/a.png"}))
			Expect(roster[1]).To(Equal(*b))
		})

		It("returns ErrNotFound for a stale id and leaves the roster unchanged", func() {
			a, _ := svc.Add(ctx, model.ParticipantFields{Name: "Ada"})

			_, err := svc.Update(ctx, a.ID+1, model.ParticipantFields{Name: "Ghost"})
			Expect(err).To(MatchError(store.ErrNotFound))

			roster, _ := svc.List(ctx)
			Expect(roster).To(Equal([]model.Participant{*a}))
		})
	})

	Describe("Remove", func() {
		It("removes the participant", func() {
			a, _ := svc.Add(ctx, model.ParticipantFields{Name: "Ada"})
			b, _ := svc.Add(ctx, model.ParticipantFields{Name: "Grace"})

			Expect(svc.Remove(ctx, a.ID)).To(Succeed())

			roster, _ := svc.List(ctx)
			Expect(roster).To(Equal([]model.Participant{*b}))
		})

		It("returns ErrNotFound for a stale id", func() {
			Expect(svc.Remove(ctx, 99)).To(MatchError(store.ErrNotFound))
		})
	})

	Describe("Find", func() {
		It("returns the participant", func() {
			a, _ := svc.Add(ctx, model.ParticipantFields{Name: "Ada"})
			found, err := svc.Find(ctx, a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(a))
		})

		It("returns ErrNotFound for a stale id", func() {
			_, err := svc.Find(ctx, 99)
			Expect(err).To(MatchError(store.ErrNotFound))
		})
	})
})
