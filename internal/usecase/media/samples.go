package media

import (
	"strconv"
	"time"
)

var samples = []struct {
	caption string
	image   string
}{
	{"Morning walk with Biscuit before the rain rolled in.", "/images/feed/walk.jpg"},
	{"Luna supervising breakfast, as always.", "/images/feed/cat-breakfast.jpg"},
	{"Bath day! Max was a very good sport about it.", "/images/feed/grooming.jpg"},
	{"Overnight guests settling in for the night.", "/images/feed/overnight.jpg"},
	{"Pickup from the vet, all clear and tail wags.", "/images/feed/transport.jpg"},
	{"Afternoon meds done, treat earned.", "/images/feed/medication.jpg"},
}

func samplePosts(limit int) []Item {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	n := len(samples)
	if limit < n {
		n = limit
	}

	out := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		s := samples[i]
		out = append(out, Item{
			ID:        "sample-" + strconv.Itoa(i+1),
			Caption:   s.caption,
			MediaType: TypeImage,
			MediaURL:  s.image,
			Permalink: "#",
			Timestamp: base.AddDate(0, 0, -i),
			Username:  "petsitting",
		})
	}
	return out
}
