package domain

import (
	"testing"
)

func TestDefaultBuckets(t *testing.T) {
	b := DefaultBuckets()

	if len(b) != 5 {
		t.Errorf("DefaultBuckets() has %d buckets, want 5", len(b))
	}

	for _, k := range RequiredKeys() {
		activities, ok := b[k]
		if !ok {
			t.Errorf("DefaultBuckets() missing bucket %d", k)
			continue
		}
		if len(activities) == 0 {
			t.Errorf("DefaultBuckets() bucket %d is empty", k)
		}
	}
}

func TestBuckets_Keys(t *testing.T) {
	b := Buckets{40: {"a"}, 1: {"b"}, 10: {"c"}}

	keys := b.Keys()
	want := []int{1, 10, 40}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %d, want %d", i, keys[i], want[i])
		}
	}
}

func TestBuckets_AddBucket(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		wantErr error
	}{
		{name: "valid duration", minutes: 15, wantErr: nil},
		{name: "minimum duration", minutes: 1, wantErr: nil},
		{name: "maximum duration", minutes: 999, wantErr: nil},
		{name: "zero duration", minutes: 0, wantErr: ErrBucketRange},
		{name: "negative duration", minutes: -5, wantErr: ErrBucketRange},
		{name: "over maximum", minutes: 1000, wantErr: ErrBucketRange},
		{name: "duplicate duration", minutes: 5, wantErr: ErrBucketExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Buckets{5: {"existing"}}
			err := b.AddBucket(tt.minutes)
			if err != tt.wantErr {
				t.Errorf("AddBucket(%d) error = %v, want %v", tt.minutes, err, tt.wantErr)
			}
			if tt.wantErr == nil {
				activities := b[tt.minutes]
				if len(activities) != 1 || activities[0] != PlaceholderLabel {
					t.Errorf("AddBucket(%d) seeded %v, want one placeholder", tt.minutes, activities)
				}
			}
		})
	}
}

func TestBuckets_DeleteBucket(t *testing.T) {
	t.Run("delete existing", func(t *testing.T) {
		b := Buckets{5: {"a"}, 10: {"b"}}
		if err := b.DeleteBucket(5); err != nil {
			t.Errorf("DeleteBucket() error = %v", err)
		}
		if _, ok := b[5]; ok {
			t.Error("DeleteBucket() left the bucket in place")
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		b := Buckets{5: {"a"}, 10: {"b"}}
		if err := b.DeleteBucket(7); err != ErrBucketNotFound {
			t.Errorf("DeleteBucket() error = %v, want ErrBucketNotFound", err)
		}
	})

	t.Run("delete last bucket", func(t *testing.T) {
		b := Buckets{5: {"a"}}
		if err := b.DeleteBucket(5); err != ErrLastBucket {
			t.Errorf("DeleteBucket() error = %v, want ErrLastBucket", err)
		}
		if _, ok := b[5]; !ok {
			t.Error("DeleteBucket() removed the last bucket")
		}
	})
}

func TestBuckets_AddActivity(t *testing.T) {
	b := Buckets{5: {"a"}}

	if err := b.AddActivity(5); err != nil {
		t.Errorf("AddActivity() error = %v", err)
	}
	if len(b[5]) != 2 || b[5][1] != PlaceholderLabel {
		t.Errorf("AddActivity() bucket = %v, want placeholder appended", b[5])
	}

	if err := b.AddActivity(7); err != ErrBucketNotFound {
		t.Errorf("AddActivity() on missing bucket error = %v, want ErrBucketNotFound", err)
	}
}

func TestBuckets_UpdateActivity(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{name: "valid index", index: 1, want: []string{"a", "renamed", "c"}},
		{name: "negative index ignored", index: -1, want: []string{"a", "b", "c"}},
		{name: "out of range ignored", index: 3, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Buckets{5: {"a", "b", "c"}}
			b.UpdateActivity(5, tt.index, "renamed")
			for i := range tt.want {
				if b[5][i] != tt.want[i] {
					t.Errorf("UpdateActivity() bucket = %v, want %v", b[5], tt.want)
					break
				}
			}
		})
	}
}

func TestBuckets_DeleteActivity(t *testing.T) {
	t.Run("delete middle activity", func(t *testing.T) {
		b := Buckets{5: {"a", "b", "c"}}
		if err := b.DeleteActivity(5, 1); err != nil {
			t.Errorf("DeleteActivity() error = %v", err)
		}
		if len(b[5]) != 2 || b[5][0] != "a" || b[5][1] != "c" {
			t.Errorf("DeleteActivity() bucket = %v, want [a c]", b[5])
		}
	})

	t.Run("delete last activity", func(t *testing.T) {
		b := Buckets{5: {"only"}}
		if err := b.DeleteActivity(5, 0); err != ErrLastActivity {
			t.Errorf("DeleteActivity() error = %v, want ErrLastActivity", err)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		b := Buckets{5: {"a", "b"}}
		if err := b.DeleteActivity(5, 2); err != ErrActivityIndex {
			t.Errorf("DeleteActivity() error = %v, want ErrActivityIndex", err)
		}
	})

	t.Run("missing bucket", func(t *testing.T) {
		b := Buckets{5: {"a"}}
		if err := b.DeleteActivity(7, 0); err != ErrBucketNotFound {
			t.Errorf("DeleteActivity() error = %v, want ErrBucketNotFound", err)
		}
	})
}

func TestBuckets_Clone(t *testing.T) {
	original := Buckets{5: {"a", "b"}}
	clone := original.Clone()

	clone[5][0] = "changed"
	clone.AddBucket(10)

	if original[5][0] != "a" {
		t.Error("Clone() shares activity slices with the original")
	}
	if _, ok := original[10]; ok {
		t.Error("Clone() shares the mapping with the original")
	}
}

func TestBuckets_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Buckets
		want bool
	}{
		{name: "equal", a: Buckets{5: {"a"}}, b: Buckets{5: {"a"}}, want: true},
		{name: "different keys", a: Buckets{5: {"a"}}, b: Buckets{10: {"a"}}, want: false},
		{name: "different labels", a: Buckets{5: {"a"}}, b: Buckets{5: {"b"}}, want: false},
		{name: "different order", a: Buckets{5: {"a", "b"}}, b: Buckets{5: {"b", "a"}}, want: false},
		{name: "different lengths", a: Buckets{5: {"a"}}, b: Buckets{5: {"a"}, 10: {"b"}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
