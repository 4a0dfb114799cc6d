// Package badgerstore implementa los puertos de persistencia sobre Badger,
// un almacén clave-valor embebido. Cada colección vive bajo su propio prefijo
// de clave y los valores se serializan como JSON:
//
//	quotes/<id>  settings/<key>  catalog/<name>  outbox/<id>
//
// Contrato del store: cada operación es una transacción Badger individual;
// las lecturas degradan a ausencia ante error; los deletes son idempotentes;
// ReplaceAll limpia e inserta la colección en una sola transacción.
package badgerstore

import (
	"fmt"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v3"
)

const (
	prefixQuotes   = "quotes/"
	prefixSettings = "settings/"
	prefixCatalog  = "catalog/"
	prefixOutbox   = "outbox/"
)

// Store es la conexión al almacén embebido. Un único proceso escritor, como
// asume todo el sistema.
type Store struct {
	db *badger.DB
}

// Open abre (o crea) la base en path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("abrir badger en %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}

// get lee una clave; (nil, false) ante ausencia o error de lectura.
func (s *Store) get(key []byte) ([]byte, bool) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false
	}
	return out, true
}

// set graba una clave en su propia transacción.
func (s *Store) set(key, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// del elimina una clave; ausente no es error.
func (s *Store) del(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// scan recorre un prefijo entregando cada valor. Ante error de lectura el
// caller recibe lo recorrido hasta ahí (degradación, no error).
func (s *Store) scan(prefix []byte, fn func(value []byte)) {
	_ = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			fn(v)
		}
		return nil
	})
}

// replaceAll borra todo el prefijo e inserta los pares dados, atómicamente.
func (s *Store) replaceAll(prefix []byte, pairs map[string][]byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		var stale [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		for k, v := range pairs {
			if err := txn.Set([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
}
