package service

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"siggibot/internal/core/domain"

	"github.com/lucasepe/codename"
)

// Seed is a splitmix64 generator whose state is derived from a user's stable id, so the same user always
// scans the same way while different users look different.
type Seed struct {
	state uint64
}

// NewSeed hashes salt and id with FNV-1a into the initial state.
func NewSeed(id, salt string) *Seed {
	h := fnv.New64a()
	_, _ = h.Write([]byte(salt))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(id))

	return &Seed{state: h.Sum64()}
}

func (s *Seed) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Intn returns a value in [0, n).
func (s *Seed) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	return int(s.Uint64() % uint64(n))
}

// Between returns a value in [lo, hi].
func (s *Seed) Between(lo, hi int) int {
	return lo + s.Intn(hi-lo+1)
}

// Float64 returns a value in [0, 1).
func (s *Seed) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// Rand adapts the seed for libraries that expect a math/rand generator.
func (s *Seed) Rand() *rand.Rand {
	return rand.New(rand.NewSource(int64(s.Uint64() >> 1)))
}

// pickDistinct chooses n different entries, preserving the order they were drawn in.
func (s *Seed) pickDistinct(items []string, n int) []string {
	pool := append([]string(nil), items...)
	if n > len(pool) {
		n = len(pool)
	}

	out := make([]string, 0, n)
	for range n {
		i := s.Intn(len(pool))
		out = append(out, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}

	return out
}

var implants = []string{
	"Kiroshi optical array",
	"Subdermal armour",
	"Neural link v2",
	"Reflex booster",
	"Synthetic lung",
	"Mantis blades",
	"Smart-link palm",
	"Bionic knee joints",
	"Memory co-processor",
	"Pain editor",
}

var affiliations = []string{
	"Independent netrunner",
	"Corporate security",
	"Street medic collective",
	"Data broker syndicate",
	"Unaffiliated civilian",
	"Rogue AI sympathiser",
}

var vulnerabilities = []string{
	"outdated firmware",
	"unpatched ICE",
	"emotional attachment to houseplants",
	"weak password (it's \"password\")",
	"caffeine dependency",
	"a deeply questionable browser history",
}

// ScanProfile is the randomized-looking result of a cyberscan.
type ScanProfile struct {
	Target        domain.User
	Designation   string
	ThreatLevel   int
	ThreatClass   string
	NeuralSync    float64
	Implants      []string
	Affiliation   string
	Vulnerability string
	Credits       int
}

func threatClass(level int) string {
	switch {
	case level >= 90:
		return "OMEGA"
	case level >= 70:
		return "HIGH"
	case level >= 40:
		return "MODERATE"
	case level >= 15:
		return "LOW"
	default:
		return "NEGLIGIBLE"
	}
}

// Scan derives the profile of a user. Draw order is fixed, so results only depend on id and salt.
func Scan(target domain.User, salt string) ScanProfile {
	seed := NewSeed(target.ID, "scan:"+salt)

	level := seed.Between(0, 100)
	designation := strings.ToUpper(codename.Generate(seed.Rand(), 0))

	return ScanProfile{
		Target:        target,
		Designation:   designation,
		ThreatLevel:   level,
		ThreatClass:   threatClass(level),
		NeuralSync:    float64(seed.Between(400, 999)) / 10,
		Implants:      seed.pickDistinct(implants, seed.Between(2, 4)),
		Affiliation:   affiliations[seed.Intn(len(affiliations))],
		Vulnerability: vulnerabilities[seed.Intn(len(vulnerabilities))],
		Credits:       seed.Between(0, 250) * 100,
	}
}

var upgrades = []string{
	"Optical zoom module",
	"Titanium skeleton",
	"Quantum reflex chip",
	"Dermal heat sinks",
	"Holographic disguise emitter",
	"Sonic dampeners",
	"Adrenal overclock",
	"Gecko grip gloves",
}

var sideEffects = []string{
	"mild static shocks when touching doorknobs",
	"an irresistible urge to narrate your own actions",
	"hearing dial-up modem noises at night",
	"none, allegedly",
	"slight glowing in the dark",
	"spontaneous software updates during meetings",
}

var grades = []string{"Mk I", "Mk II", "Mk III", "Mk IV", "Mk V"}

// UpgradeOffer is the seeded result of the upgrade command.
type UpgradeOffer struct {
	Target        domain.User
	Upgrade       string
	Grade         string
	Cost          int
	SuccessChance int
	SideEffect    string
}

func (u UpgradeOffer) Title() string {
	return fmt.Sprintf("%s %s", u.Upgrade, u.Grade)
}

func Upgrade(target domain.User, salt string) UpgradeOffer {
	seed := NewSeed(target.ID, "upgrade:"+salt)

	grade := seed.Intn(len(grades))

	return UpgradeOffer{
		Target:        target,
		Upgrade:       upgrades[seed.Intn(len(upgrades))],
		Grade:         grades[grade],
		Cost:          (grade + 1) * seed.Between(10, 50) * 100,
		SuccessChance: 100 - grade*seed.Between(5, 12),
		SideEffect:    sideEffects[seed.Intn(len(sideEffects))],
	}
}
