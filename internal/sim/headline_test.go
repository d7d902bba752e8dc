package sim

import (
	"math"
	"testing"

	"github.com/san-kum/studiofx/internal/dynamo"
)

func TestHeadline(t *testing.T) {
	label, v := Headline("field", dynamo.State{0, 0, 0.2, 1, 1, 0.4}, 3)
	if label != "opacity" || math.Abs(v-0.3) > 1e-12 {
		t.Errorf("field headline %s=%f", label, v)
	}
	label, v = Headline("flock", dynamo.State{3, 4, 0, 0, 0, 0, 0, 0}, 4)
	if label != "offset" || math.Abs(v-2.5) > 1e-12 {
		t.Errorf("flock headline %s=%f", label, v)
	}
	if _, v = Headline("lens", dynamo.State{0.5, 0, 1.2, 0.3}, 2); v != 1.2 {
		t.Errorf("lens headline %f", v)
	}
	if label, _ = Headline("field", nil, 3); label != "" {
		t.Error("empty snapshot should have no headline")
	}
	if label, _ = Headline("other", dynamo.State{1}, 1); label != "" {
		t.Error("unknown effect should have no headline")
	}
}
