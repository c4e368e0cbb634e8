package view_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/huddle/internal/model"
	"basegraph.app/huddle/internal/view"
)

func asMap(v any) map[string]any {
	raw, err := json.Marshal(v)
	Expect(err).NotTo(HaveOccurred())
	var out map[string]any
	Expect(json.Unmarshal(raw, &out)).To(Succeed())
	return out
}

func blocksOf(v map[string]any) []map[string]any {
	raw, ok := v["blocks"].([]any)
	Expect(ok).To(BeTrue(), "view has no blocks array")
	out := make([]map[string]any, len(raw))
	for i, b := range raw {
		out[i] = b.(map[string]any)
	}
	return out
}

func text(block map[string]any) string {
	return block["text"].(map[string]any)["text"].(string)
}

func elements(block map[string]any) []map[string]any {
	raw := block["elements"].([]any)
	out := make([]map[string]any, len(raw))
	for i, e := range raw {
		out[i] = e.(map[string]any)
	}
	return out
}

var roster = []model.Participant{
	{ID: 101, Name: "Ada", Position: "CTO", PictureURL: "https://example.com/ada.png"},
	{ID: 202, Name: "Grace", Position: "Staff Engineer", PictureURL: "https://example.com/grace.png"},
}

const staticBlocks = 8

var _ = Describe("HomeView", func() {
	It("renders only the generation form for an empty roster", func() {
		home := asMap(view.HomeView(nil))
		Expect(home["type"]).To(Equal("home"))
		Expect(home["callback_id"]).To(Equal(view.CallbackHome))

		blocks := blocksOf(home)
		Expect(blocks).To(HaveLen(staticBlocks))
		Expect(blocks[0]["block_id"]).To(Equal(view.BlockTopic))
		Expect(blocks[1]["block_id"]).To(Equal(view.BlockCompany))
		Expect(blocks[2]["block_id"]).To(Equal(view.BlockMessageCount))
		Expect(blocks[3]["block_id"]).To(Equal(view.BlockChannel))

		selectEl := blocks[2]["element"].(map[string]any)
		Expect(selectEl["type"]).To(Equal("static_select"))
		Expect(selectEl["options"]).To(HaveLen(4))

		Expect(blocks[3]["element"].(map[string]any)["type"]).To(Equal("channels_select"))
		Expect(elements(blocks[5])[0]["action_id"]).To(Equal(view.ActionAddParticipant))
		submit := elements(blocks[7])[0]
		Expect(submit["action_id"]).To(Equal(view.ActionGenerate))
		Expect(submit["style"]).To(Equal("primary"))
	})

	It("appends a header, card, divider and actions per participant in roster order", func() {
		blocks := blocksOf(asMap(view.HomeView(roster)))
		Expect(blocks).To(HaveLen(staticBlocks + 4*len(roster)))

		for i, p := range roster {
			card := blocks[staticBlocks+4*i : staticBlocks+4*(i+1)]

			Expect(card[0]["type"]).To(Equal("header"))
			Expect(text(card[0])).To(Equal([]string{"User 1", "User 2"}[i]))

			Expect(card[1]["type"]).To(Equal("section"))
			Expect(text(card[1])).To(Equal("*Name:*\n" + p.Name + "\n\n*Position:*\n" + p.Position))
			accessory := card[1]["accessory"].(map[string]any)
			Expect(accessory["type"]).To(Equal("image"))
			Expect(accessory["image_url"]).To(Equal(p.PictureURL))
			Expect(accessory["alt_text"]).To(Equal(p.Name))

			Expect(card[2]["type"]).To(Equal("divider"))

			buttons := elements(card[3])
			Expect(buttons).To(HaveLen(2))
			Expect(buttons[0]["action_id"]).To(Equal([]string{"edit_user_101", "edit_user_202"}[i]))
			Expect(buttons[1]["action_id"]).To(Equal([]string{"delete_user_101", "delete_user_202"}[i]))
			Expect(buttons[1]["style"]).To(Equal("danger"))
			Expect(buttons[0]["value"]).To(Equal(buttons[1]["value"]))
		}
	})

	It("omits the image accessory when no picture is set", func() {
		blocks := blocksOf(asMap(view.HomeView([]model.Participant{{ID: 7, Name: "NoPic"}})))
		Expect(blocks[staticBlocks+1]).NotTo(HaveKey("accessory"))
	})

	It("is idempotent for an unchanged roster", func() {
		first, err := json.Marshal(view.HomeView(roster))
		Expect(err).NotTo(HaveOccurred())
		second, err := json.Marshal(view.HomeView(roster))
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(MatchJSON(first))
	})
})

var _ = Describe("ParticipantModal", func() {
	It("renders a blank add form", func() {
		modal := asMap(view.ParticipantModal(nil))
		Expect(modal["type"]).To(Equal("modal"))
		Expect(modal["callback_id"]).To(Equal(view.CallbackAddParticipant))
		Expect(text(map[string]any{"text": modal["title"]})).To(Equal("Add User"))
		Expect(text(map[string]any{"text": modal["submit"]})).To(Equal("Add"))

		for _, b := range blocksOf(modal) {
			Expect(b["element"]).NotTo(HaveKey("initial_value"))
		}
	})

	It("pre-fills the edit form and tags it with the participant id", func() {
		p := roster[1]
		modal := asMap(view.ParticipantModal(&p))
		Expect(modal["callback_id"]).To(Equal("edit_user_modal_202"))
		Expect(text(map[string]any{"text": modal["title"]})).To(Equal("Edit User"))
		Expect(text(map[string]any{"text": modal["submit"]})).To(Equal("Save"))

		blocks := blocksOf(modal)
		Expect(blocks).To(HaveLen(3))
		values := map[string]any{}
		for _, b := range blocks {
			values[b["block_id"].(string)] = b["element"].(map[string]any)["initial_value"]
		}
		Expect(values).To(Equal(map[string]any{
			view.BlockName:     "Grace",
			view.BlockPosition: "Staff Engineer",
			view.BlockPicture:  "https://example.com/grace.png",
		}))
	})

	It("keeps the same field structure in both modes", func() {
		p := roster[0]
		add := blocksOf(asMap(view.ParticipantModal(nil)))
		edit := blocksOf(asMap(view.ParticipantModal(&p)))
		for i := range add {
			Expect(edit[i]["block_id"]).To(Equal(add[i]["block_id"]))
			Expect(edit[i]["element"].(map[string]any)["action_id"]).To(Equal(add[i]["element"].(map[string]any)["action_id"]))
		}
	})
})

var _ = Describe("DiscussionModal", func() {
	It("carries the four generation inputs", func() {
		modal := asMap(view.DiscussionModal())
		Expect(modal["callback_id"]).To(Equal(view.CallbackGenerateDiscussion))

		var ids []any
		for _, b := range blocksOf(modal) {
			ids = append(ids, b["block_id"])
		}
		Expect(ids).To(Equal([]any{view.BlockTopic, view.BlockCompany, view.BlockMessageCount, view.BlockChannel}))
	})
})

var _ = Describe("Greeting", func() {
	It("mentions the user", func() {
		Expect(view.Greeting("U123")).To(Equal("Hello, <@U123>! I'm here to help."))
	})
})
