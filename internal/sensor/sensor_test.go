package sensor

import (
	"testing"

	"github.com/luki/plantmon/internal/config"
)

func TestClassify(t *testing.T) {
	th := config.Thresholds{MaxTemperature: 30, MaxHumidity: 40}
	tests := []struct {
		temp, hum float64
		want      Status
	}{
		{35, 10, StatusAlert},
		{20, 50, StatusAlert},
		{31, 41, StatusAlert},
		{30, 40, StatusOK},
		{20, 10, StatusOK},
	}
	for _, tt := range tests {
		if got := Classify(tt.temp, tt.hum, th); got != tt.want {
			t.Errorf("Classify(%v, %v) = %s, want %s", tt.temp, tt.hum, got, tt.want)
		}
	}
}

func TestGeneratorRangesAndStatus(t *testing.T) {
	g := NewGenerator(7)
	th := config.DefaultThresholds()

	for i := 0; i < 5000; i++ {
		r := g.Read("Compressor Central", th)

		if r.Temperature < 20 || r.Temperature > 100 {
			t.Fatalf("temperature out of range: %v", r.Temperature)
		}
		if r.Humidity < 30 || r.Humidity > 70 {
			t.Fatalf("humidity out of range: %v", r.Humidity)
		}
		if r.Efficiency < 70 || r.Efficiency > 100 {
			t.Fatalf("efficiency out of range: %v", r.Efficiency)
		}
		for _, v := range []float64{r.Temperature, r.Humidity, r.Efficiency} {
			if v != round2(v) {
				t.Fatalf("value not rounded to 2 decimals: %v", v)
			}
		}

		wantAlert := r.Temperature > th.MaxTemperature || r.Humidity > th.MaxHumidity
		if r.Alert() != wantAlert {
			t.Fatalf("status %s for %+v with %+v", r.Status, r, th)
		}
	}
}

func TestGeneratorIsDeterministicPerSeed(t *testing.T) {
	a, b := NewGenerator(99), NewGenerator(99)
	th := config.DefaultThresholds()
	for i := 0; i < 20; i++ {
		ra, rb := a.Read("x", th), b.Read("x", th)
		if ra != rb {
			t.Fatalf("reading %d differs: %+v vs %+v", i, ra, rb)
		}
	}
}

func TestScriptedReplaysAndReclassifies(t *testing.T) {
	s := NewScripted(map[string][]Reading{
		"Prensa": {
			{Temperature: 35, Humidity: 50, Efficiency: 90, Status: StatusOK},
			{Temperature: 20, Humidity: 10, Efficiency: 75},
		},
	})
	th := config.Thresholds{MaxTemperature: 30, MaxHumidity: 40}

	first := s.Read("Prensa", th)
	if first.Temperature != 35 || first.Status != StatusAlert {
		t.Errorf("first reading: got %+v", first)
	}
	second := s.Read("Prensa", th)
	if second.Temperature != 20 || second.Status != StatusOK {
		t.Errorf("second reading: got %+v", second)
	}
	third := s.Read("Prensa", th)
	if third != second {
		t.Errorf("exhausted script should repeat the last reading, got %+v", third)
	}
	if unknown := s.Read("Forno", th); unknown.Temperature != 0 || unknown.Status != StatusOK {
		t.Errorf("unscripted machine: got %+v", unknown)
	}
}

func TestPerformanceLabel(t *testing.T) {
	tests := []struct {
		eff  float64
		want string
	}{
		{70, "Desempenho Baixo"},
		{79.99, "Desempenho Baixo"},
		{80, "Desempenho OK"},
		{100, "Desempenho OK"},
	}
	for _, tt := range tests {
		if got := PerformanceLabel(tt.eff); got != tt.want {
			t.Errorf("PerformanceLabel(%v) = %q, want %q", tt.eff, got, tt.want)
		}
	}
}

func TestReadingString(t *testing.T) {
	r := Reading{Temperature: 72.35, Humidity: 45, Efficiency: 88.1, Status: StatusOK}
	want := "Temp=72.35°C, Umid=45.0%, Efic=88.1%, Status=OK"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
