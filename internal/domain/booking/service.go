package booking

// ServiceKind identifies one entry of the fixed service catalog.
type ServiceKind string

const (
	ServiceDogWalking    ServiceKind = "dog-walking"
	ServiceHomeVisit     ServiceKind = "home-visit"
	ServiceOvernightCare ServiceKind = "overnight-care"
	ServiceTransport     ServiceKind = "transport"
	ServiceGrooming      ServiceKind = "grooming"
	ServiceMedication    ServiceKind = "medication"
)

type Service struct {
	Kind        ServiceKind `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	PriceFrom   float64     `json:"price_from"`
	Unit        string      `json:"unit"`
}

var catalog = []Service{
	{
		Kind:        ServiceDogWalking,
		Name:        "Dog Walking",
		Description: "A walk around the neighbourhood with fresh water and a treat afterwards.",
		PriceFrom:   20,
		Unit:        "walk",
	},
	{
		Kind:        ServiceHomeVisit,
		Name:        "Home Visit",
		Description: "Feeding, litter or garden check, play time and a photo update.",
		PriceFrom:   18,
		Unit:        "visit",
	},
	{
		Kind:        ServiceOvernightCare,
		Name:        "Overnight Care",
		Description: "A sitter stays the night so your pet keeps its routine at home.",
		PriceFrom:   65,
		Unit:        "night",
	},
	{
		Kind:        ServiceTransport,
		Name:        "Pet Transport",
		Description: "Rides to the vet, groomer or daycare in a pet-safe vehicle.",
		PriceFrom:   25,
		Unit:        "trip",
	},
	{
		Kind:        ServiceGrooming,
		Name:        "Grooming",
		Description: "Brushing, bathing and nail trims at home.",
		PriceFrom:   35,
		Unit:        "session",
	},
	{
		Kind:        ServiceMedication,
		Name:        "Medication",
		Description: "Oral or injectable medication given on schedule by a trained sitter.",
		PriceFrom:   15,
		Unit:        "visit",
	},
}

// Catalog returns a copy of the service catalog in display order.
func Catalog() []Service {
	out := make([]Service, len(catalog))
	copy(out, catalog)
	return out
}

func LookupService(kind ServiceKind) (Service, bool) {
	for _, s := range catalog {
		if s.Kind == kind {
			return s, true
		}
	}
	return Service{}, false
}

func (k ServiceKind) IsValid() bool {
	_, ok := LookupService(k)
	return ok
}

// PetType is what the contact form offers in its pet type selector.
type PetType string

const (
	PetDog    PetType = "dog"
	PetCat    PetType = "cat"
	PetBird   PetType = "bird"
	PetRabbit PetType = "rabbit"
	PetFish   PetType = "fish"
	PetOther  PetType = "other"
)

func (p PetType) IsValid() bool {
	switch p {
	case PetDog, PetCat, PetBird, PetRabbit, PetFish, PetOther:
		return true
	}
	return false
}
