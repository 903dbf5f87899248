package cell

import "testing"

func TestCellDataCloneIsIndependent(t *testing.T) {
	cd := CellData{Genome: Genome{1, 2, 3}, Score: 4.2, Version: 1}
	clone := cd.Clone()
	clone.Genome[0] = 99
	clone.Score = 0

	if cd.Genome[0] == clone.Genome[0] {
		t.Fatalf("clone shares genome backing array with original")
	}
	if cd.Score == clone.Score {
		t.Fatalf("clone and original unexpectedly share score after mutation")
	}
	if clone.Version != cd.Version {
		t.Fatalf("clone should preserve version")
	}
}
