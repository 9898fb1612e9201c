package server

import (
	"encoding/json"
	"fmt"
	"looping/internal/db"
	"looping/internal/loop"
	"math/big"
	"net/http"
	"strconv"
)

type ringResponse struct {
	Name    string   `json:"name"`
	Items   []string `json:"items"`
	Cursor  int      `json:"cursor"`
	Current string   `json:"current"`
}

type itemResponse struct {
	Index int    `json:"index"`
	Item  string `json:"item"`
}

func newRingResponse(name string, ring db.Ring) ringResponse {
	return ringResponse{
		Name:    name,
		Items:   ring.Items,
		Cursor:  ring.Cursor,
		Current: ring.Current(),
	}
}

func intParam(r *http.Request, name string) (int, error) {
	v := r.PathValue(name)
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", errBadRequest, name, v)
	}
	return i, nil
}

func bigParam(r *http.Request, name string) (*big.Int, error) {
	v := r.PathValue(name)
	i, ok := big.NewInt(0).SetString(v, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q is not an integer", errBadRequest, name, v)
	}
	return i, nil
}

func listRings(w http.ResponseWriter, r *http.Request) error {
	names := db.Names()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, r, http.StatusOK, names)
	return nil
}

func getRing(w http.ResponseWriter, r *http.Request) error {
	name := r.PathValue("name")
	ring, err := db.Get(name)
	if err != nil {
		return err
	}
	writeJSON(w, r, http.StatusOK, newRingResponse(name, ring))
	return nil
}

func putRing(w http.ResponseWriter, r *http.Request) error {
	name := r.PathValue("name")

	var items []string
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&items); err != nil {
		return fmt.Errorf("%w: decode items: %v", errBadRequest, err)
	}

	if err := db.Put(name, items); err != nil {
		return err
	}
	return getRing(w, r)
}

func deleteRing(w http.ResponseWriter, r *http.Request) error {
	if err := db.Delete(r.PathValue("name")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ringAt resolves an index of any size against the ring without touching its cursor.
func ringAt(w http.ResponseWriter, r *http.Request) error {
	i, err := bigParam(r, "index")
	if err != nil {
		return err
	}

	ring, err := db.Get(r.PathValue("name"))
	if err != nil {
		return err
	}

	index, err := loop.ResolveBig(ring, i)
	if err != nil {
		return err
	}
	writeJSON(w, r, http.StatusOK, itemResponse{Index: index, Item: ring.At(index)})
	return nil
}

func itemHandler(f func(name string, i int) (int, string, error), param string, fixed int) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		i := fixed
		if param != "" {
			var err error
			if i, err = intParam(r, param); err != nil {
				return err
			}
		}

		index, item, err := f(r.PathValue("name"), i)
		if err != nil {
			return err
		}
		writeJSON(w, r, http.StatusOK, itemResponse{Index: index, Item: item})
		return nil
	}
}
