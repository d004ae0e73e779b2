package events

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("event producer", func() {
	Context("write", func() {
		It("successfully writes messages", func() {
			w := newTestWriter()
			ep := NewEventProducer(w)

			// add the first message
			err := ep.Write(context.TODO(), "kind1", []byte("msg1"))
			Expect(err).To(BeNil())

			err = ep.Write(context.TODO(), "kind2", []byte("msg2"))
			Expect(err).To(BeNil())

			Eventually(func() int {
				return len(w.Events())
			}, 2*time.Second, 50*time.Millisecond).Should(Equal(2))

			messages := w.Events()
			Expect(messages[0].Context.GetType()).To(Equal("kind1"))
			Expect(messages[0].Data()).To(Equal([]byte("msg1")))
			Expect(messages[1].Context.GetType()).To(Equal("kind2"))

			Expect(w.Topics()[0]).To(Equal(defaultTopic))

			ep.Close()
		})

		It("honors the output topic option", func() {
			w := newTestWriter()
			ep := NewEventProducer(w, WithOutputTopic("custom.topic"))

			err := ep.Write(context.TODO(), JobMessageKind, []byte("{}"))
			Expect(err).To(BeNil())

			Eventually(func() int {
				return len(w.Topics())
			}, 2*time.Second, 50*time.Millisecond).Should(Equal(1))

			Expect(w.Topics()[0]).To(Equal("custom.topic"))

			ep.Close()
		})
	})
})
