package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"showroom/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(config.NewViper())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--env-file", ""))
	err := cmd.Execute()
	return out.String(), err
}

func TestCalcCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name: "defaults",
			args: []string{"calc"},
			want: []string{"Loan amount      $224,000", "Monthly payment  $4,217", "4.9% APR, 60 months"},
		},
		{
			name: "formatted price and explicit down payment",
			args: []string{"calc", "--price", "$450,000", "--down", "90,000", "--rate", "6", "--term", "72"},
			want: []string{"Vehicle price    $450,000", "Loan amount      $360,000"},
		},
		{
			name: "clamped",
			args: []string{"calc", "--rate", "20", "--term", "50", "--clamp"},
			want: []string{"12.0% APR, 48 months"},
		},
		{
			name: "not computable",
			args: []string{"calc", "--price", "50000", "--down", "60000"},
			want: []string{"Not computable"},
		},
		{
			name:    "bad price",
			args:    []string{"calc", "--price", "lots"},
			wantErr: "--price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestCalcSchedule(t *testing.T) {
	out, err := run(t, "calc", "--term", "36", "--schedule")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(strings.TrimSpace(last), "36") || !strings.HasSuffix(strings.TrimSpace(last), "0.00") {
		t.Errorf("last schedule row = %q", last)
	}
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	_, err := run(t, "serve", "--port", "eighty", "--store", "floppy")
	if err == nil {
		t.Fatal("expected configuration error")
	}
	for _, want := range []string{"invalid port 'eighty'", "invalid store backend 'floppy'"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestWorkerRequiresQueue(t *testing.T) {
	t.Setenv("AMQP_URL", "")
	_, err := run(t, "worker")
	if err == nil || !strings.Contains(err.Error(), "AMQP_URL is required") {
		t.Fatalf("err = %v", err)
	}
}

func TestSetupLogger(t *testing.T) {
	if _, err := SetupLogger("loud", io.Discard); err == nil {
		t.Fatal("expected error for unknown level")
	}
	logger, err := SetupLogger("debug", io.Discard)
	if err != nil || logger == nil {
		t.Fatalf("SetupLogger: %v", err)
	}
}

func TestSheetsAuthNeedsClient(t *testing.T) {
	t.Setenv("GOOGLE_OAUTH_CLIENT_JSON", "")
	t.Setenv("GOOGLE_OAUTH_CLIENT_FILE", "")
	_, err := run(t, "sheets-auth")
	if err == nil || !strings.Contains(err.Error(), "GOOGLE_OAUTH_CLIENT_JSON") {
		t.Fatalf("err = %v", err)
	}
}
