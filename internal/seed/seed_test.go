package seed

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/store"
	"github.com/nursejordan/i-notarize-online.com/internal/store/memstore"
)

type rawSource string

func (r rawSource) Fetch(context.Context) ([]byte, error) { return []byte(r), nil }
func (r rawSource) String() string                        { return "test" }

type getterFunc func(*s3.GetObjectInput) (*s3.GetObjectOutput, error)

func (f getterFunc) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return f(in)
}

func TestEmbeddedBundleIsValid(t *testing.T) {
	b, err := Load(context.Background(), Embedded{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(b.Services) != 3 || len(b.Configs) != 4 || len(b.Testimonials) != 3 || len(b.AdditionalServices) != 4 {
		t.Fatalf("unexpected bundle sizes: %d services, %d configs, %d testimonials, %d additional",
			len(b.Services), len(b.Configs), len(b.Testimonials), len(b.AdditionalServices))
	}
	if b.Services[2].ID != "bulk" || b.Services[2].BasePrice != nil {
		t.Fatalf("bulk service should have no base price: %+v", b.Services[2])
	}
	for _, k := range models.ConfigKeys {
		found := false
		for _, c := range b.Configs {
			found = found || c.Key == k
		}
		if !found {
			t.Fatalf("config %s missing from bundle", k)
		}
	}
}

func TestLoadRejectsBadTestimonial(t *testing.T) {
	src := rawSource(`{"version":"1","services":[{"id":"remote","name":"Remote"}],
		"testimonials":[{"name":"A","role":"B","content":"C","rating":6,"date":"2024-01-01"}]}`)
	_, err := Load(context.Background(), src)
	if err == nil || !strings.Contains(err.Error(), "testimonials[0]") {
		t.Fatalf("expected testimonial error, got %v", err)
	}
}

func TestLoadRejectsUnknownVersionAndFields(t *testing.T) {
	for _, raw := range []string{
		`{"version":"2","services":[{"id":"x","name":"X"}]}`,
		`{"version":"1","services":[{"id":"x","name":"X"}],"extra":true}`,
		`{"version":"1","services":[]}`,
	} {
		if _, err := Load(context.Background(), rawSource(raw)); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestLoadFromS3(t *testing.T) {
	g := getterFunc(func(*s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(embedded)))}, nil
	})
	src := SourceFor("s3://seeds/seed.v1.json", g)
	if _, ok := src.(S3); !ok {
		t.Fatalf("SourceFor returned %T", src)
	}
	if _, err := Load(context.Background(), src); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := SourceFor("", g).(Embedded); !ok {
		t.Fatal("empty uri should select the embedded bundle")
	}
}

func TestIfEmptyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	s := NewSeeder(st, Embedded{})

	seeded, err := s.IfEmpty(ctx)
	if err != nil || !seeded {
		t.Fatalf("first seed = %v, %v", seeded, err)
	}
	seeded, err = s.IfEmpty(ctx)
	if err != nil || seeded {
		t.Fatalf("second seed = %v, %v", seeded, err)
	}

	services, _ := st.ListActiveServices(ctx)
	if len(services) != 3 {
		t.Fatalf("services = %d, want 3", len(services))
	}
	if st.ConfigCount() != 4 {
		t.Fatalf("configs = %d, want 4", st.ConfigCount())
	}
	addons, _ := st.ListActiveAdditionalServices(ctx)
	if len(addons) != 4 || addons[2].Unit == nil || *addons[2].Unit != "each" {
		t.Fatalf("unexpected additional services: %+v", addons)
	}
}

func TestIfEmptyOrdersTestimonialsBySeedPosition(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	s := NewSeeder(st, Embedded{})
	s.Now = func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }
	if _, err := s.IfEmpty(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := st.ListPublishedTestimonials(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].Name != "Lisa Rodriguez" || got[2].Name != "Sarah Johnson" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestIfEmptyReportsPartialState(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	if err := st.PutConfig(ctx, models.KeyBusinessHours, map[string]any{"remote": "24/7"}, time.Now()); err != nil {
		t.Fatalf("put: %v", err)
	}
	_, err := NewSeeder(st, Embedded{}).IfEmpty(ctx)
	if !errors.Is(err, store.ErrSeedConflict) {
		t.Fatalf("expected seed conflict, got %v", err)
	}
	if ok, _ := st.HasServices(ctx); ok {
		t.Fatal("partial seed written")
	}
}

func TestIfEmptyPropagatesCheckFailure(t *testing.T) {
	st := memstore.New()
	boom := errors.New("unreachable")
	st.FailOn = func(op string) error {
		if op == "HasServices" {
			return boom
		}
		return nil
	}
	if _, err := NewSeeder(st, Embedded{}).IfEmpty(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped check error, got %v", err)
	}
}
