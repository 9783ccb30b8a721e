package articlescmd

import "testing"

func TestBuildIndexCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     BuildIndexCommand
		wantErr bool
	}{
		{name: "stdout", cmd: BuildIndexCommand{Output: StdoutOutput}},
		{name: "file", cmd: BuildIndexCommand{Output: "public/articles.json", Indent: true}},
		{name: "empty", cmd: BuildIndexCommand{}, wantErr: true},
		{name: "blank", cmd: BuildIndexCommand{Output: "   "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestBuildIndexCommandType(t *testing.T) {
	if got := (BuildIndexCommand{}).Type(); got != "blog.articles.build_index" {
		t.Fatalf("unexpected message type %q", got)
	}
}
