package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// SeedFromString returns a 64-bit seed from an arbitrary string using SHA256.
func SeedFromString(s string) uint64 {
	h := sha256.Sum256([]byte(s))
	return binary.LittleEndian.Uint64(h[:8])
}

// Derive returns a deterministic child seed based on a base seed and a label using HMAC-SHA256.
// Labels should be stable strings such as "game:<uuid>" or "scenario:3".
func Derive(base uint64, label string) uint64 {
	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, base)
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(label))
	sum := m.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// RunSeed encapsulates the canonical seed string for a game and exposes deterministic streams.
type RunSeed struct {
	Text string
	root uint64
}

// NewRunSeed creates a deterministic RunSeed from a textual seed. Empty text is rejected.
func NewRunSeed(seedText string) (RunSeed, error) {
	if seedText == "" {
		return RunSeed{}, fmt.Errorf("seed text must not be empty")
	}
	return RunSeed{Text: seedText, root: SeedFromString(seedText)}, nil
}

// Stream returns a new deterministic RNG stream derived from the run's root seed.
func (r RunSeed) Stream(label string) *Stream {
	return newStream(Derive(r.root, label))
}

// SplitMix64 PRNG implementation for deterministic streams.
type SplitMix64 struct{ state uint64 }

func newSplitMix64(seed uint64) *SplitMix64 { return &SplitMix64{state: seed} }

func (s *SplitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (s *SplitMix64) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.next() % uint64(n))
}

// Stream provides deterministic random numbers. base is kept so a saved position can be restored.
type Stream struct {
	base uint64
	sm   *SplitMix64
}

func newStream(seed uint64) *Stream {
	return &Stream{base: seed, sm: newSplitMix64(seed)}
}

// Intn mirrors math/rand.Intn but is deterministic per stream.
func (s *Stream) Intn(n int) int { return s.sm.intn(n) }

// Die rolls a six-sided die.
func (s *Stream) Die() int { return s.sm.intn(6) + 1 }

// StreamState is the resumable position of a stream, stored with game snapshots.
type StreamState struct {
	Base  uint64 `json:"base"`
	State uint64 `json:"state"`
}

func (s *Stream) State() StreamState { return StreamState{Base: s.base, State: s.sm.state} }

// RestoreStream rebuilds a stream at a saved position.
func RestoreStream(st StreamState) *Stream {
	return &Stream{base: st.Base, sm: &SplitMix64{state: st.State}}
}

// Roller is the single source of dice for a game. Every random decision goes through it.
type Roller interface {
	Die() int
	Intn(n int) int
}

// ScriptedRoller replays fixed dice. Intn answers come from Picks and default to 0 when
// none are queued, which makes random tie-breaks pick the first candidate.
type ScriptedRoller struct {
	Dice     []int
	Picks    []int
	Fallback Roller
}

func NewScriptedRoller(dice ...int) *ScriptedRoller { return &ScriptedRoller{Dice: dice} }

func (r *ScriptedRoller) Die() int {
	if len(r.Dice) == 0 {
		if r.Fallback != nil {
			return r.Fallback.Die()
		}
		panic("scripted roller: out of dice")
	}
	d := r.Dice[0]
	r.Dice = r.Dice[1:]
	return d
}

func (r *ScriptedRoller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if len(r.Picks) == 0 {
		if r.Fallback != nil {
			return r.Fallback.Intn(n)
		}
		return 0
	}
	p := r.Picks[0]
	r.Picks = r.Picks[1:]
	return p % n
}

func rollDice(r Roller, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = r.Die()
	}
	return out
}

// shuffleStrings is a Fisher-Yates shuffle driven by the game roller.
func shuffleStrings(r Roller, s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func pick(r Roller, s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[r.Intn(len(s))]
}

// tiebreak mirrors a d99 roll used to order otherwise equal candidates.
func tiebreak(r Roller) int { return r.Intn(99) + 1 }
