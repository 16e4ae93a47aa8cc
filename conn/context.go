package conn

// Context holds the connection strings for one database: a default, and
// optional read and write replicas that fall back to it.
type Context struct {
	Default string
	Read    string
	Write   string
}

func (c Context) DefaultConn() (*DB, error) {
	return open(c.Default)
}

func (c Context) ReadConn() (*DB, error) {
	if c.Read == "" {
		return c.DefaultConn()
	}
	return open(c.Read)
}

func (c Context) WriteConn() (*DB, error) {
	if c.Write == "" {
		return c.DefaultConn()
	}
	return open(c.Write)
}

func open(prefixed string) (*DB, error) {
	if prefixed == "" {
		return nil, ErrNoConnection
	}
	return Open(prefixed)
}
