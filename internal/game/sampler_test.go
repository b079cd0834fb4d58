package game

import (
	"testing"

	"github.com/peterkuimelis/pokedraft/internal/dex"
)

func TestDealCardsExcludesTeamAndExcluded(t *testing.T) {
	pool := []dex.EvolutionLine{
		line(1, "bulbasaur", dex.TypeGrass, dex.TypePoison),
		line(4, "charmander", dex.TypeFire),
		line(7, "squirtle", dex.TypeWater),
		line(25, "pikachu", dex.TypeElectric),
	}
	team := pool[:1]
	excluded := map[int]bool{4: true}

	for seed := int64(1); seed <= 20; seed++ {
		cards := DealCards(pool, team, HandSize, excluded, testRNG(seed))
		for _, c := range cards {
			if c.LineID == 1 {
				t.Fatalf("seed %d: dealt a line already on the team", seed)
			}
			if c.LineID == 4 {
				t.Fatalf("seed %d: dealt an excluded line", seed)
			}
		}
	}
}

func TestDealCardsDistinct(t *testing.T) {
	pool := []dex.EvolutionLine{
		line(1, "bulbasaur", dex.TypeGrass),
		line(4, "charmander", dex.TypeFire),
		line(7, "squirtle", dex.TypeWater),
		line(25, "pikachu", dex.TypeElectric),
		line(63, "abra", dex.TypePsychic),
	}
	for seed := int64(1); seed <= 50; seed++ {
		cards := DealCards(pool, nil, HandSize, nil, testRNG(seed))
		if len(cards) != HandSize {
			t.Fatalf("seed %d: dealt %d cards, want %d", seed, len(cards), HandSize)
		}
		seen := make(map[int]bool)
		for _, c := range cards {
			if seen[c.LineID] {
				t.Fatalf("seed %d: line %d dealt twice in one hand", seed, c.LineID)
			}
			seen[c.LineID] = true
		}
	}
}

func TestDealCardsShortPool(t *testing.T) {
	pool := []dex.EvolutionLine{
		line(1, "bulbasaur", dex.TypeGrass),
		line(4, "charmander", dex.TypeFire),
	}
	cards := DealCards(pool, nil, HandSize, nil, testRNG(1))
	if len(cards) != 2 {
		t.Fatalf("dealt %d cards from a pool of 2, want 2", len(cards))
	}
}

// TestDealCardsExhausted: an empty candidate set deals nothing, regardless
// of how the pool was emptied.
func TestDealCardsExhausted(t *testing.T) {
	pool := []dex.EvolutionLine{
		line(1, "bulbasaur", dex.TypeGrass),
		line(4, "charmander", dex.TypeFire),
	}
	team := pool[:1]
	excluded := map[int]bool{4: true}

	if cards := DealCards(nil, nil, HandSize, nil, testRNG(1)); len(cards) != 0 {
		t.Errorf("empty pool dealt %d cards", len(cards))
	}
	if cards := DealCards(pool, team, HandSize, excluded, testRNG(1)); len(cards) != 0 {
		t.Errorf("fully excluded pool dealt %d cards", len(cards))
	}
}

func TestDealCardsDeterministic(t *testing.T) {
	pool := []dex.EvolutionLine{
		line(1, "bulbasaur", dex.TypeGrass),
		line(4, "charmander", dex.TypeFire),
		line(7, "squirtle", dex.TypeWater),
		line(25, "pikachu", dex.TypeElectric),
		line(63, "abra", dex.TypePsychic),
		line(95, "onix", dex.TypeRock),
	}
	first := DealCards(pool, nil, HandSize, nil, testRNG(42))
	second := DealCards(pool, nil, HandSize, nil, testRNG(42))
	if len(first) != len(second) {
		t.Fatalf("hand sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].LineID != second[i].LineID {
			t.Fatalf("card %d differs: %d vs %d", i, first[i].LineID, second[i].LineID)
		}
	}
}

// TestDealCardsWeightBias: a line with two novel types weighs 5 against
// weight-1 redundant lines, so it should lead the hand far more often than
// a uniform draw would.
func TestDealCardsWeightBias(t *testing.T) {
	team := []dex.EvolutionLine{line(1, "bulbasaur", dex.TypeGrass, dex.TypePoison)}
	pool := []dex.EvolutionLine{
		line(6, "charizard", dex.TypeFire, dex.TypeFlying), // both types novel
	}
	for i := 0; i < 9; i++ {
		pool = append(pool, line(100+i, "redundant", dex.TypeGrass, dex.TypePoison))
	}

	const trials = 2000
	hits := 0
	for i := 0; i < trials; i++ {
		cards := DealCards(pool, team, 1, nil, testRNG(int64(i)+1))
		if len(cards) == 1 && cards[0].LineID == 6 {
			hits++
		}
	}

	// Expected rate is 5/14 ≈ 0.36; uniform would be 0.10.
	if hits < trials/5 {
		t.Errorf("novel-type line drawn %d/%d times, expected a strong bias", hits, trials)
	}
}

func TestRandomStarter(t *testing.T) {
	pool := []dex.EvolutionLine{
		line(16, "pidgey", dex.TypeNormal, dex.TypeFlying),
		starterLine(1, "bulbasaur", dex.TypeGrass, dex.TypePoison),
		starterLine(4, "charmander", dex.TypeFire),
	}
	for seed := int64(1); seed <= 20; seed++ {
		starter, ok := RandomStarter(pool, testRNG(seed))
		if !ok {
			t.Fatalf("seed %d: no starter found", seed)
		}
		if !starter.IsStarter {
			t.Fatalf("seed %d: drew non-starter line %d", seed, starter.LineID)
		}
	}

	if _, ok := RandomStarter(pool[:1], testRNG(1)); ok {
		t.Error("expected no starter in a starterless pool")
	}
}
