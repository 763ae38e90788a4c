package sequence

import "github.com/c360/musicalconductor/config"

// FromFile converts a YAML-loaded sequence definition into the runtime's
// Sequence type. It performs no validation; callers are expected to run the
// result through Validator.Validate before registering it.
func FromFile(sf *config.SequenceFile) Sequence {
	seq := Sequence{
		Name:        sf.Name,
		Description: sf.Description,
		Key:         sf.Key,
		Tempo:       sf.Tempo,
		Category:    sf.Category,
		Movements:   make([]Movement, 0, len(sf.Movements)),
	}

	for _, mf := range sf.Movements {
		mv := Movement{
			Name:        mf.Name,
			Description: mf.Description,
			Beats:       make([]Beat, 0, len(mf.Beats)),
		}
		for _, bf := range mf.Beats {
			mv.Beats = append(mv.Beats, Beat{
				Beat:        bf.Beat,
				Event:       bf.Event,
				Title:       bf.Title,
				Description: bf.Description,
				Dynamics:    bf.Dynamics,
				Timing: Timing{
					Kind:    TimingKind(bf.Timing.Kind),
					DelayMS: bf.Timing.DelayMS,
				},
				Data:          bf.Data,
				ErrorHandling: ErrorHandling(bf.ErrorHandling),
			})
		}
		seq.Movements = append(seq.Movements, mv)
	}

	return seq
}
