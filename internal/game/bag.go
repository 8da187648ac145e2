package game

import "math/rand"

// Bag is the 7-bag piece randomizer: all 7 kinds are shuffled together and
// dealt out before reshuffling, which bounds piece droughts.
//
// The shuffle is an explicit Fisher-Yates over a seeded math/rand source,
// so two bags built with the same seed deal identical sequences. Versus
// play relies on this: both players run the same piece stream from one
// exchanged seed.
type Bag struct {
	rng   *rand.Rand
	queue []Kind
}

// NewBag creates a bag seeded from the given value.
func NewBag(seed int64) *Bag {
	b := &Bag{
		rng:   rand.New(rand.NewSource(seed)),
		queue: make([]Kind, 0, 2*KindCount),
	}
	// Two bags up front so previews never run dry mid-draw.
	b.refill()
	b.refill()
	return b
}

// Next deals the next piece. The queue is topped up before the draw
// whenever it is down to one bag, so it never empties.
func (b *Bag) Next() Kind {
	if len(b.queue) <= KindCount {
		b.refill()
	}
	k := b.queue[0]
	b.queue = b.queue[1:]
	return k
}

// Preview returns up to n upcoming kinds without consuming them.
func (b *Bag) Preview(n int) []Kind {
	if n > len(b.queue) {
		n = len(b.queue)
	}
	return b.queue[:n]
}

// refill appends one freshly shuffled full set of kinds.
func (b *Bag) refill() {
	bag := AllKinds()
	for i := KindCount - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
	b.queue = append(b.queue, bag[:]...)
}
