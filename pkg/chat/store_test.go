package chat_test

import (
	"fmt"

	"github.com/banterhq/banter/pkg/chat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var store *chat.Store

	BeforeEach(func() {
		store = chat.NewStore()
	})

	Describe("Apply", func() {
		It("should create a node on first sight", func() {
			result := store.Apply(chat.Message{Role: chat.RoleUser, Content: "hi", Timestamp: "t1"})

			Expect(result).To(Equal(chat.ApplyCreated))
			Expect(store.Len()).To(Equal(1))
		})

		It("should update in place when the same identity returns with grown content", func() {
			store.Apply(chat.Message{Role: chat.RoleModel, Content: "par", Timestamp: "t1"})
			result := store.Apply(chat.Message{Role: chat.RoleModel, Content: "partial answer", Timestamp: "t1"})

			Expect(result).To(Equal(chat.ApplyUpdated))
			Expect(store.Len()).To(Equal(1))

			msg, ok := store.Get("t1")
			Expect(ok).To(BeTrue())
			Expect(msg.Content).To(Equal("partial answer"))
		})

		It("should report unchanged when content is identical", func() {
			msg := chat.Message{Role: chat.RoleModel, Content: "done", Timestamp: "t1"}
			store.Apply(msg)

			Expect(store.Apply(msg)).To(Equal(chat.ApplyUnchanged))
		})

		It("should keep the first-seen role on update", func() {
			store.Apply(chat.Message{Role: chat.RoleModel, Content: "a", Timestamp: "t1"})
			store.Apply(chat.Message{Role: chat.RoleUser, Content: "ab", Timestamp: "t1"})

			msg, _ := store.Get("t1")
			Expect(msg.Role).To(Equal(chat.RoleModel))
			Expect(msg.Content).To(Equal("ab"))
		})

		It("should never reorder on update", func() {
			store.Apply(chat.Message{Role: chat.RoleUser, Content: "question", Timestamp: "t1"})
			store.Apply(chat.Message{Role: chat.RoleModel, Content: "an", Timestamp: "t2"})
			store.Apply(chat.Message{Role: chat.RoleModel, Content: "answer", Timestamp: "t2"})
			store.Apply(chat.Message{Role: chat.RoleUser, Content: "question", Timestamp: "t1"})

			msgs := store.Messages()
			Expect(msgs).To(HaveLen(2))
			Expect(msgs[0].Timestamp).To(Equal("t1"))
			Expect(msgs[1].Timestamp).To(Equal("t2"))
			Expect(msgs[1].Content).To(Equal("answer"))
		})
	})

	Describe("ApplyAll", func() {
		It("should apply records in order and count changes", func() {
			changed := store.ApplyAll([]chat.Message{
				{Role: chat.RoleUser, Content: "q", Timestamp: "t1"},
				{Role: chat.RoleModel, Content: "a", Timestamp: "t2"},
				{Role: chat.RoleModel, Content: "a", Timestamp: "t2"},
			})

			Expect(changed).To(Equal(2))
			Expect(store.Len()).To(Equal(2))
		})

		It("should end with exactly one node per identity", func() {
			var feed []chat.Message
			for i := 0; i < 5; i++ {
				feed = append(feed, chat.Message{
					Role:      chat.RoleModel,
					Content:   fmt.Sprintf("answer %d chars", i),
					Timestamp: "t-model",
				})
			}
			store.ApplyAll(feed)

			Expect(store.Len()).To(Equal(1))
			msg, _ := store.Get("t-model")
			Expect(msg.Content).To(Equal("answer 4 chars"))
		})
	})

	Describe("Messages", func() {
		It("should return a snapshot unaffected by later applies", func() {
			store.Apply(chat.Message{Role: chat.RoleUser, Content: "q", Timestamp: "t1"})
			snapshot := store.Messages()
			store.Apply(chat.Message{Role: chat.RoleModel, Content: "a", Timestamp: "t2"})

			Expect(snapshot).To(HaveLen(1))
			Expect(store.Len()).To(Equal(2))
		})
	})

	Describe("Last", func() {
		It("should return the most recent node", func() {
			store.Apply(chat.Message{Role: chat.RoleUser, Content: "q", Timestamp: "t1"})
			store.Apply(chat.Message{Role: chat.RoleModel, Content: "a", Timestamp: "t2"})

			last, ok := store.Last()
			Expect(ok).To(BeTrue())
			Expect(last.Timestamp).To(Equal("t2"))
		})

		It("should report absence on an empty store", func() {
			_, ok := store.Last()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Clear", func() {
		It("should drop all nodes and identity mappings", func() {
			store.Apply(chat.Message{Role: chat.RoleUser, Content: "q", Timestamp: "t1"})
			store.Clear()

			Expect(store.Len()).To(Equal(0))
			_, ok := store.Get("t1")
			Expect(ok).To(BeFalse())

			// A cleared identity renders as a fresh node afterwards
			Expect(store.Apply(chat.Message{Role: chat.RoleUser, Content: "q", Timestamp: "t1"})).To(Equal(chat.ApplyCreated))
		})
	})
})
