// Package quill derives SQL statements from entity declarations. An
// entity is a plain Go type implementing the Entity contract: it names
// its table, declares the table layout as typed columns, maps itself to
// column values, and reads itself back from a result row. The derived
// operations compose the statement algebra of quill's dialect/sql
// package, so everything they return is an immutable, shareable
// statement value.
//
// # Declaring an entity
//
// Column declarations live next to the entity type; the typed column
// wrappers (IntColumn, TextColumn, ...) only accept comparison values of
// the column's declared Go type:
//
//	var (
//	    userID   = quill.Int("id", schema.PrimaryKeyAutoincrement())
//	    userName = quill.Text("name")
//	    userAge  = quill.Int("age")
//	)
//
//	type User struct {
//	    ID   int64
//	    Name string
//	    Age  int64
//	}
//
//	func (User) TableName() string { return "table_user" }
//
//	func (User) TableLayout() []schema.Column {
//	    return []schema.Column{userID.Column, userName.Column, userAge.Column}
//	}
//
//	func (u User) ColumnValue(c schema.Column) sql.Value {
//	    switch {
//	    case c.Equivalent(userID.Column):
//	        if u.ID == 0 {
//	            return nil // let the database assign the id
//	        }
//	        return sql.Int(u.ID)
//	    case c.Equivalent(userName.Column):
//	        return sql.Text(u.Name)
//	    case c.Equivalent(userAge.Column):
//	        return sql.Int(u.Age)
//	    }
//	    return nil
//	}
//
//	func (User) FromRow(r *sql.Row) (User, error) {
//	    var u User
//	    var err error
//	    if u.ID, err = r.Int(userID.Column); err != nil {
//	        return u, err
//	    }
//	    if u.Name, err = r.Text(userName.Column); err != nil {
//	        return u, err
//	    }
//	    u.Age, err = r.Int(userAge.Column)
//	    return u, err
//	}
//
// TableConstraints comes for free by embedding quill.Base, or declares
// table-level constraints such as schema.Unique.
//
// # Derived operations
//
// With the contract in place, the operations write themselves:
//
//	quill.EnsureTable[User](ctx, drv)
//	id, err := quill.Insert(User{Name: "ann", Age: 30}).InsertID(ctx, drv)
//	adults, err := quill.Select[User]().Where(userAge.GTE(18)).OrderBy(userName.Asc()).All(ctx, drv)
//	u, err := quill.Find[User](ctx, drv, sql.Int(id))
//	err = quill.Update(u).Exec(ctx, drv)
//	err = quill.DeleteWhere[User](userAge.LT(0)).Exec(ctx, drv)
//
// Single-result lookups report a missing row through ErrNotFound;
// constraint violations surface through the IsConstraintError family.
package quill
