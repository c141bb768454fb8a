// Command run sweeps Fermi-Hubbard chains over interaction strengths,
// storing Hamiltonians, spectra and ground-state statistics under a
// run directory, and prints the gathered results as CSV.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/miamico/ffsim"
)

const (
	fnameEigen      = "eig.csv"
	fnameDone       = "done.txt"
	fnameStatistics = "statistics.txt"
	fnameDB         = "hamiltonian.db"
)

var (
	runDir = flag.String("d", filepath.Join("runs", "hubbard"), "run directory")
)

type Statistics struct {
	l int
	u float64

	Energies        []float64
	DoubleOccupancy float64
}

// halfFilling returns the electron counts closest to one electron per
// site.
func halfFilling(norb int) [2]int {
	return [2]int{(norb + 1) / 2, norb / 2}
}

func hamName(l int, u float64) string {
	return fmt.Sprintf("L%d_U%f", l, u)
}

func getStatistics(dir string, l int, nelec [2]int) error {
	vvs, err := readEig(dir)
	if err != nil {
		return errors.Wrap(err, "")
	}

	stats := Statistics{}
	for _, vv := range vvs {
		stats.Energies = append(stats.Energies, real(vv.Val))
	}
	stats.DoubleOccupancy, err = ffsim.DoubleOccupancy(vvs[0].Vec, l, nelec)
	if err != nil {
		return errors.Wrap(err, "")
	}

	b, err := json.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "")
	}
	mPath := filepath.Join(dir, fnameStatistics)
	if err := os.WriteFile(mPath, b, 0644); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func solveGround(store *ffsim.Store, dir string, c Statistics, nelec [2]int) error {
	h := ffsim.FermiHubbard1D(c.l, 1, float32(c.u), 0, 0, false)
	if err := store.Save(hamName(c.l, c.u), h); err != nil {
		return errors.Wrap(err, "")
	}

	a, err := h.LinearOperator(c.l, nelec)
	if err != nil {
		return errors.Wrap(err, "")
	}
	vvs := ffsim.Eigen(a.Dense())

	if err := writeEig(dir, vvs); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func solve(store *ffsim.Store, dir string, c Statistics) error {
	donePath := filepath.Join(dir, fnameDone)
	if _, err := os.Stat(donePath); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.Wrap(err, "")
	}

	nelec := halfFilling(c.l)
	if err := solveGround(store, dir, c, nelec); err != nil {
		return errors.Wrap(err, "")
	}
	if err := getStatistics(dir, c.l, nelec); err != nil {
		return errors.Wrap(err, "")
	}

	if err := os.WriteFile(donePath, nil, 0644); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func gather(dir string) ([]Statistics, error) {
	stats := make([]Statistics, 0)
	lEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	for _, lent := range lEntries {
		// The run directory also holds the Hamiltonian database.
		if !lent.IsDir() {
			continue
		}
		l, err := strconv.Atoi(lent.Name())
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%#v", lent))
		}

		ldir := filepath.Join(dir, lent.Name())
		uEntries, err := os.ReadDir(ldir)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%#v", lent))
		}
		for _, uent := range uEntries {
			u, err := strconv.ParseFloat(uent.Name(), 64)
			if err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("%#v %#v", lent, uent))
			}

			udir := filepath.Join(ldir, uent.Name())
			sb, err := os.ReadFile(filepath.Join(udir, fnameStatistics))
			if err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("%#v %#v", lent, uent))
			}
			s := Statistics{l: l, u: u}
			if err := json.Unmarshal(sb, &s); err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("%#v %#v", lent, uent))
			}
			stats = append(stats, s)
		}
	}
	return stats, nil
}

func readEig(dir string) ([]ffsim.ValVec, error) {
	fpath := filepath.Join(dir, fnameEigen)
	f, err := os.Open(fpath)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer f.Close()
	r := csv.NewReader(f)

	record, err := r.Read()
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	vvs := make([]ffsim.ValVec, len(record))
	for j, s := range record {
		v, err := strconv.ParseComplex(s, 128)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		vvs[j].Val = v
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "")
		}

		for j, s := range record {
			v, err := strconv.ParseComplex(s, 128)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			vvs[j].Vec = append(vvs[j].Vec, v)
		}
	}

	return vvs, nil
}

func writeEig(dir string, vvs []ffsim.ValVec) error {
	fpath := filepath.Join(dir, fnameEigen)
	f, err := os.Create(fpath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	w := csv.NewWriter(f)

	row := make([]string, len(vvs))
	for j, vv := range vvs {
		row[j] = strconv.FormatComplex(vv.Val, 'f', -1, 128)
	}
	if err1 := w.Write(row); err1 != nil && err == nil {
		err = errors.Wrap(err1, "")
	}
	for i := range len(vvs[0].Vec) {
		for j, vv := range vvs {
			row[j] = strconv.FormatComplex(vv.Vec[i], 'f', -1, 128)
		}
		if err1 := w.Write(row); err1 != nil && err == nil {
			err = errors.Wrap(err1, "")
			break
		}
	}

	w.Flush()
	if err1 := w.Error(); err1 != nil && err == nil {
		err = errors.Wrap(err1, "")
	}
	if err1 := f.Close(); err1 != nil && err == nil {
		err = errors.Wrap(err1, "")
	}
	return err
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	if err := os.MkdirAll(*runDir, os.ModePerm); err != nil {
		return errors.Wrap(err, "")
	}
	store, err := ffsim.OpenStore(filepath.Join(*runDir, fnameDB))
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer store.Close()

	// Maximum chain length.
	const maxL = 5
	configs := make([]Statistics, 0)
	for l := 2; l <= maxL; l++ {
		for _, u := range []float64{0, 1, 2, 4, 8} {
			configs = append(configs, Statistics{l: l, u: u})
		}
	}

	// Solve for the hamiltonian.
	for _, c := range configs {
		lstr := strconv.Itoa(c.l)
		ustr := fmt.Sprintf("%f", c.u)
		dir := filepath.Join(*runDir, lstr, ustr)

		if err := solve(store, dir, c); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%d %f", c.l, c.u))
		}
		nnz, err := store.NumNonZero(hamName(c.l, c.u))
		if err != nil {
			return errors.Wrap(err, "")
		}
		log.Printf("%d %f %d", c.l, c.u, nnz)
	}

	// Gather results and print them.
	stats, err := gather(*runDir)
	if err != nil {
		return errors.Wrap(err, "")
	}
	fmt.Printf("l,u,e0,e1,e2,docc\n")
	for _, s := range stats {
		fmt.Printf("%d,%f,%f,%f,%f,%f\n", s.l, s.u, s.Energies[0], s.Energies[1], s.Energies[2], s.DoubleOccupancy)
	}
	return nil
}
