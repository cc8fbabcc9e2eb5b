// Package sql writes records that take part in reference cycles.
//
// When two entities reference each other through foreign keys, the owning
// record must exist before the back-reference can be written. A Writer runs
// that as two explicit phases against any ExecQuerier (*sql.DB, *sql.Tx):
//
//	phase 1: INSERT INTO "authors" ("author_id", "name") VALUES ($1, $2)
//	phase 2: UPDATE "authors" SET "favourite_book_id" = $1 WHERE "author_id" = $2
//
// The columns of each phase come from a Plan, which compiler/gen derives
// from the relationships declared with post_update:
//
//	w, err := sql.NewWriter(dialect.Postgres, db)
//	if err != nil {
//		return err
//	}
//	err = w.CreateAll(ctx, models.AuthorWritePlan, rows)
//
// Transactions belong to the caller. Pass a *sql.Tx to run both phases
// atomically.
package sql
