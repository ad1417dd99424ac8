package fixture

import (
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"github.com/bornholm/roster/internal/core/model"
)

var firstNames = []string{
	"Ana", "Bo", "Cyrielle", "David", "Elena", "Farid", "Greta", "Hugo",
	"Ines", "Jonas", "Katja", "Louis", "Maren", "Nils", "Olga", "Pierre",
	"Quynh", "Rasmus", "Sofia", "Theo", "Ulla", "Viktor", "Wanda", "Yann",
}

var lastNames = []string{
	"Andersen", "Bergmann", "Clausen", "Dupont", "Eriksen", "Fischer",
	"Garnier", "Hansen", "Iversen", "Jensen", "Koch", "Larsen", "Moreau",
	"Nielsen", "Olsen", "Petit", "Rohde", "Sørensen", "Thomsen", "Vestergaard",
}

var roles = []string{
	"Engineering", "Design", "Product", "Marketing", "Support", "Operations",
}

// Fixture creation times are anchored to a fixed instant so that repeated
// generations from the same seed are byte-identical once serialized.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generate returns count people derived from the given seed. Identifiers,
// names, roles and timestamps only depend on the seed, so two calls with
// identical arguments return identical records in identical order.
func Generate(seed int64, count int) []model.Person {
	rng := rand.New(rand.NewSource(seed))

	people := make([]model.Person, 0, count)
	for i := 0; i < count; i++ {
		id := make([]byte, 10)
		rng.Read(id)

		firstName := firstNames[rng.Intn(len(firstNames))]
		lastName := lastNames[rng.Intn(len(lastNames))]
		role := roles[rng.Intn(len(roles))]
		createdAt := epoch.Add(time.Duration(i*24+rng.Intn(24)) * time.Hour)

		name := fmt.Sprintf("%s %s", firstName, lastName)

		people = append(people, model.Person{
			ID:        model.PersonID(hex.EncodeToString(id)),
			Name:      name,
			Role:      role,
			AvatarURL: avatarURL(name),
			CreatedAt: createdAt,
		})
	}

	return people
}

func avatarURL(name string) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%x", name)
}
