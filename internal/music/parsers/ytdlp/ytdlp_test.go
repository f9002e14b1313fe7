package ytdlp

import "testing"

func TestFirstLink(t *testing.T) {
	tests := []struct {
		name    string
		stdout  string
		want    string
		wantErr bool
	}{
		{"single", "https://rr1.example/audio?x=1\n", "https://rr1.example/audio?x=1", false},
		{"noise first", "NA\n  https://rr2.example/a  \n", "https://rr2.example/a", false},
		{"empty", "", "", true},
		{"no url", "NA\n", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := firstLink(tt.stdout)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	if New("", false).Name() != "ytdlp-link" || New("", true).Name() != "ytdlp-pipe" {
		t.Fatal("unexpected parser names")
	}
}
