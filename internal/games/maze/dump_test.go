package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roommaze/internal/config"
	"github.com/vovakirdan/roommaze/internal/scene"
)

func TestDumpRoundTrip(t *testing.T) {
	cfg := LayoutFor(config.DefaultMazeConfig(), config.DifficultyHard)
	w := scene.Generate(cfg, rand.New(rand.NewSource(42)))

	d := Dump(w, cfg, 42, config.DifficultyHard)
	require.Equal(t, int64(42), d.Seed)
	require.Equal(t, "hard", d.Difficulty)
	require.Len(t, d.Entities, w.Len())
	require.Equal(t, 1, d.Counts["Goal"])

	data, err := d.Marshal()
	require.NoError(t, err)

	parsed, err := ParseDump(data)
	require.NoError(t, err)
	require.Equal(t, d.Fingerprint, parsed.Fingerprint)
	require.Equal(t, d.GoalRoom, parsed.GoalRoom)

	rebuilt, err := parsed.World()
	require.NoError(t, err)
	require.Equal(t, d.Fingerprint, scene.FingerprintString(scene.Fingerprint(rebuilt)))
	require.Len(t, rebuilt.ByTag(scene.TagDoor), d.Counts["Door"])
	for _, door := range rebuilt.ByTag(scene.TagDoor) {
		require.NotNil(t, door.Door)
		require.NotNil(t, door.Collider)
	}
}

func TestDumpGoalRoomIsNotCenter(t *testing.T) {
	cfg := LayoutFor(config.DefaultMazeConfig(), "")
	w := scene.Generate(cfg, rand.New(rand.NewSource(7)))

	d := Dump(w, cfg, 7, "")
	require.NotEqual(t, [2]int{0, 0}, d.GoalRoom)
	half := (cfg.GridSize - 1) / 2
	for _, i := range d.GoalRoom {
		require.LessOrEqual(t, i, half)
		require.GreaterOrEqual(t, i, -half)
	}
}

func TestDumpUnknownTag(t *testing.T) {
	d, err := ParseDump([]byte("seed: 1\nentities:\n  - tag: Lava\n    position: [0, 0, 0]\n    scale: [1, 1, 1]\n"))
	require.NoError(t, err)

	_, err = d.World()
	require.Error(t, err)
	require.Contains(t, err.Error(), "entity 0")
}

func TestParseDumpRejectsGarbage(t *testing.T) {
	_, err := ParseDump([]byte("entities: {not: [a list"))
	require.Error(t, err)
}

func hardDump(t *testing.T, seed int64, recorded config.DifficultyPreset) LayoutDump {
	t.Helper()
	cfg := LayoutFor(config.DefaultMazeConfig(), config.DifficultyHard)
	w := scene.Generate(cfg, rand.New(rand.NewSource(seed)))
	data, err := Dump(w, cfg, seed, recorded).Marshal()
	require.NoError(t, err)
	d, err := ParseDump(data)
	require.NoError(t, err)
	return d
}

func TestDumpVerify(t *testing.T) {
	tests := []struct {
		name     string
		recorded config.DifficultyPreset
		preset   config.DifficultyPreset
		wantErr  error
	}{
		{"recorded difficulty without flag", config.DifficultyHard, "", nil},
		{"recorded difficulty beats flag", config.DifficultyHard, config.DifficultyEasy, nil},
		{"unrecorded difficulty uses flag", "", config.DifficultyHard, nil},
		{"unrecorded difficulty falls back to config", "", "", ErrLayoutChanged},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := hardDump(t, 42, tc.recorded)
			err := d.Verify(config.DefaultMazeConfig(), tc.preset)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestDumpVerifyDetectsEdits(t *testing.T) {
	d := hardDump(t, 42, config.DifficultyHard)
	d.Entities[0].Position[0] += 0.5

	require.ErrorIs(t, d.Verify(config.DefaultMazeConfig(), ""), ErrFingerprintMismatch)

	d = hardDump(t, 42, config.DifficultyHard)
	d.Difficulty = "brutal"
	require.ErrorContains(t, d.Verify(config.DefaultMazeConfig(), ""), "brutal")
}
