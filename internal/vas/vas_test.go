package vas

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		v, a, s float64
		want    Label
	}{
		{"disgust anchor", -0.5, 0.7, -0.9, DisgustAversion},
		{"annoyance case study", -0.18, 0.42, -0.028, InterestAmbivalence},
		{"serenity", 0.8, 0.1, 0.5, SerenityContentment},
		{"neutral calm", 0, 0, 0, CalmnessApathy},
		{"terror", -0.9, 0.9, -0.9, FearTerror},
		{"grief", -0.8, 0.3, -0.2, SadnessGrief},
		{"ecstasy", 0.9, 0.8, 0.9, LoveEcstasy},
		{"elation alone", 0.9, 0.8, -0.2, ExcitementElation},
		{"rage", -0.9, 0.95, 0.8, AngerRage},
		{"anxiety", -0.9, 0.95, 0, DistressAnxiety},
		{"relaxed", 0.5, 0.2, 0, Relaxation},
		{"bored", -0.5, 0.1, 0, BoredomDullness},

		// Anchors sitting exactly on a strict threshold fall through.
		{"love anchor at arousal 0.6", 1.0, 0.6, 1.0, SerenityContentment},
		{"anger anchor at valence -0.7", -0.7, 1.0, 0.7, InterestAmbivalence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyVAS(tt.v, tt.a, tt.s); got != tt.want {
				t.Fatalf("ClassifyVAS(%v, %v, %v) = %q, want %q", tt.v, tt.a, tt.s, got, tt.want)
			}
		})
	}
}

func TestExplain(t *testing.T) {
	label, rule := Explain(Reading{Valence: -0.5, Arousal: 0.7, Sociality: -0.9})
	if label != DisgustAversion || rule != "disgust" {
		t.Fatalf("Explain = (%q, %q), want (Disgust/Aversion, disgust)", label, rule)
	}
	label, rule = Explain(Reading{Valence: 0.1, Arousal: 0.5})
	if label != InterestAmbivalence || rule != "default" {
		t.Fatalf("Explain = (%q, %q), want default", label, rule)
	}
}
