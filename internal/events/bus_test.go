package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("event bus", func() {
	Context("subscribe", func() {
		It("delivers events for the subscribed owner only", func() {
			bus := NewBus()

			ownerA := uuid.New()
			ownerB := uuid.New()

			chA, unsubA := bus.Subscribe(ownerA)
			defer unsubA()
			chB, unsubB := bus.Subscribe(ownerB)
			defer unsubB()

			event := JobEvent{ID: uuid.New(), OwnerID: ownerA, Status: "processing", UpdatedAt: time.Now()}
			bus.Publish(context.TODO(), event)

			var received JobEvent
			Eventually(chA).Should(Receive(&received))
			Expect(received.ID).To(Equal(event.ID))
			Expect(received.OwnerID).To(Equal(ownerA))

			Consistently(chB, 100*time.Millisecond).ShouldNot(Receive())
		})

		It("supports multiple subscriptions for the same owner", func() {
			bus := NewBus()
			owner := uuid.New()

			ch1, unsub1 := bus.Subscribe(owner)
			defer unsub1()
			ch2, unsub2 := bus.Subscribe(owner)
			defer unsub2()

			bus.Publish(context.TODO(), JobEvent{ID: uuid.New(), OwnerID: owner, Status: "completed"})

			Eventually(ch1).Should(Receive())
			Eventually(ch2).Should(Receive())
		})

		It("closes the channel on unsubscribe", func() {
			bus := NewBus()

			ch, unsubscribe := bus.Subscribe(uuid.New())
			unsubscribe()

			Eventually(ch).Should(BeClosed())
		})

		It("tolerates a double unsubscribe", func() {
			bus := NewBus()

			_, unsubscribe := bus.Subscribe(uuid.New())
			unsubscribe()
			unsubscribe()
		})
	})

	Context("publish", func() {
		It("drops events when the subscriber buffer is full", func() {
			bus := NewBus()
			owner := uuid.New()

			ch, unsubscribe := bus.Subscribe(owner)
			defer unsubscribe()

			for i := 0; i < subscriberBufferSize+5; i++ {
				bus.Publish(context.TODO(), JobEvent{ID: uuid.New(), OwnerID: owner, Status: "processing"})
			}

			Expect(len(ch)).To(Equal(subscriberBufferSize))
		})

		It("forwards every event to the attached producer", func() {
			w := newTestWriter()
			ep := NewEventProducer(w)
			bus := NewBus(WithForwarder(ep))

			// no subscription registered for this owner
			event := JobEvent{ID: uuid.New(), OwnerID: uuid.New(), Status: "failed", UpdatedAt: time.Now().UTC()}
			bus.Publish(context.TODO(), event)

			Eventually(func() int {
				return len(w.Events())
			}, 2*time.Second, 50*time.Millisecond).Should(Equal(1))

			e := w.Events()[0]
			Expect(e.Context.GetType()).To(Equal(JobMessageKind))

			var forwarded JobEvent
			Expect(json.Unmarshal(e.Data(), &forwarded)).To(BeNil())
			Expect(forwarded.ID).To(Equal(event.ID))
			Expect(forwarded.Status).To(Equal("failed"))

			ep.Close()
		})
	})
})
