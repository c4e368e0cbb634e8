package store_test

import (
	"context"
	"math/rand"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/huddle/internal/model"
	"basegraph.app/huddle/internal/store"
)

func participant(id int64, name string) model.Participant {
	return model.Participant{ID: id, Name: name, Position: "Engineer", PictureURL: "https://example.com/" + name + ".png"}
}

func ids(ps []model.Participant) []int64 {
	out := make([]int64, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

var _ = Describe("MemoryRosterStore", func() {
	var (
		ctx    context.Context
		roster store.RosterStore
	)

	BeforeEach(func() {
		ctx = context.Background()
		roster = store.NewMemoryRosterStore()
	})

	It("starts empty", func() {
		list, err := roster.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(BeEmpty())
	})

	It("lists entries in insertion order", func() {
		Expect(roster.Add(ctx, participant(3, "c"))).To(Succeed())
		Expect(roster.Add(ctx, participant(1, "a"))).To(Succeed())
		Expect(roster.Add(ctx, participant(2, "b"))).To(Succeed())

		list, err := roster.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(ids(list)).To(Equal([]int64{3, 1, 2}))
	})

	It("refuses a duplicate id", func() {
		Expect(roster.Add(ctx, participant(1, "a"))).To(Succeed())
		Expect(roster.Add(ctx, participant(1, "again"))).To(MatchError(ContainSubstring("already exists")))
	})

	It("returns a snapshot from List", func() {
		Expect(roster.Add(ctx, participant(1, "a"))).To(Succeed())
		list, _ := roster.List(ctx)
		list[0].Name = "mutated"

		found, err := roster.Find(ctx, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(found.Name).To(Equal("a"))
	})

	Describe("Update", func() {
		It("replaces fields in place and keeps the id and position", func() {
			Expect(roster.Add(ctx, participant(1, "a"))).To(Succeed())
			Expect(roster.Add(ctx, participant(2, "b"))).To(Succeed())

			updated := model.ParticipantFields{Name: "Bea", Position: "CTO", PictureURL: "https://example.com/bea.png"}.WithID(2)
			Expect(roster.Update(ctx, updated)).To(Succeed())

			found, err := roster.Find(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(*found).To(Equal(updated))

			list, _ := roster.List(ctx)
			Expect(ids(list)).To(Equal([]int64{1, 2}))
		})

		It("reports a stale id", func() {
			Expect(roster.Update(ctx, participant(42, "ghost"))).To(MatchError(store.ErrNotFound))
			list, _ := roster.List(ctx)
			Expect(list).To(BeEmpty())
		})
	})

	Describe("Remove", func() {
		It("removes the entry and keeps the rest in order", func() {
			for i, name := range []string{"a", "b", "c"} {
				Expect(roster.Add(ctx, participant(int64(i+1), name))).To(Succeed())
			}
			Expect(roster.Remove(ctx, 2)).To(Succeed())

			list, _ := roster.List(ctx)
			Expect(ids(list)).To(Equal([]int64{1, 3}))
		})

		It("reports a stale id without touching the roster", func() {
			Expect(roster.Add(ctx, participant(1, "a"))).To(Succeed())
			Expect(roster.Remove(ctx, 9)).To(MatchError(store.ErrNotFound))
			list, _ := roster.List(ctx)
			Expect(list).To(HaveLen(1))
		})
	})

	It("returns ErrNotFound from Find for unknown ids", func() {
		_, err := roster.Find(ctx, 7)
		Expect(err).To(MatchError(store.ErrNotFound))
	})

	It("keeps surviving entries in order with unique ids across random operations", func() {
		rng := rand.New(rand.NewSource(42))
		var expected []model.Participant
		next := int64(1)

		for step := 0; step < 500; step++ {
			switch op := rng.Intn(3); {
			case op == 0 || len(expected) == 0:
				p := participant(next, "p")
				next++
				Expect(roster.Add(ctx, p)).To(Succeed())
				expected = append(expected, p)
			case op == 1:
				i := rng.Intn(len(expected))
				p := expected[i]
				p.Name = "renamed"
				Expect(roster.Update(ctx, p)).To(Succeed())
				expected[i] = p
			default:
				i := rng.Intn(len(expected))
				Expect(roster.Remove(ctx, expected[i].ID)).To(Succeed())
				expected = append(expected[:i], expected[i+1:]...)
			}
		}

		list, err := roster.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(Equal(expected))

		seen := map[int64]bool{}
		for _, p := range list {
			Expect(seen).NotTo(HaveKey(p.ID))
			seen[p.ID] = true
		}
	})

	It("is safe for concurrent adds", func() {
		var wg sync.WaitGroup
		for i := 1; i <= 50; i++ {
			wg.Add(1)
			go func(id int64) {
				defer GinkgoRecover()
				defer wg.Done()
				Expect(roster.Add(ctx, participant(id, "p"))).To(Succeed())
			}(int64(i))
		}
		wg.Wait()

		list, _ := roster.List(ctx)
		Expect(list).To(HaveLen(50))
	})
})
