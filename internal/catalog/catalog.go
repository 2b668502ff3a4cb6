// Package catalog holds the fixed, ordered set of statistics queries run every cycle.
package catalog

import (
	"fmt"

	"github.com/vshulcz/pggmetric/internal/domain"
)

// DelayedJobGroup tags the job-queue backlog metrics.
const DelayedJobGroup = "delayed_job"

// Maintenance operations tracked by the staleness queries.
const (
	Vacuum  = "vacuum"
	Analyze = "analyze"
)

var entries = build()

// Entries returns a copy of the catalog in publish order.
func Entries() []domain.QueryDefinition {
	out := make([]domain.QueryDefinition, len(entries))
	copy(out, entries)
	return out
}

func build() []domain.QueryDefinition {
	q := []domain.QueryDefinition{
		domain.NewQuery("select * from pg_stat_bgwriter;"),
		domain.NewQuery("select sum(numbackends) as backends, sum(xact_commit) as xact_commit, sum(xact_rollback) as xact_rollback, sum(blks_read) as blks_read, sum(blks_hit) as blks_hit, sum(tup_returned) as tup_returned, sum(tup_fetched) as tup_fetched, sum(tup_inserted) as tup_inserted, sum(tup_updated) as tup_updated, sum(tup_deleted) as tup_deleted from pg_stat_database;"),
		domain.NewQuery("select sum(seq_scan) as seq_scan, sum(seq_tup_read) as seq_tup_read, sum(idx_scan) as idx_scan, sum(idx_tup_fetch) as idx_tup_fetch, sum(n_tup_ins) as n_tup_ins, sum(n_tup_upd) as n_tup_upd, sum(n_tup_del) as n_tup_del, sum(n_tup_hot_upd) as n_tup_hot_upd, sum(n_live_tup) as n_live_tup, sum(n_dead_tup) as n_dead_tup from pg_stat_all_tables;"),
		domain.NewQuery("select sum(heap_blks_read) as heap_blks_read, sum(heap_blks_hit) as heap_blks_hit, sum(idx_blks_read) as idx_blks_read_tbl, sum(idx_blks_hit) as idx_blks_hit_tbl, sum(toast_blks_read) as toast_blks_read, sum(toast_blks_hit) as toast_blks_hit, sum(tidx_blks_read) as tidx_blks_read, sum(tidx_blks_hit) as tidx_blks_hit from pg_statio_all_tables;"),
		domain.NewQuery("select sum(idx_blks_read) as idx_blks_read, sum(idx_blks_hit) as idx_blks_hit from pg_statio_all_indexes;"),
		domain.NewQuery("select COALESCE(sum(blks_read), 0) as seq_blks_read, COALESCE(sum(blks_hit), 0) as seq_blks_hit from pg_statio_all_sequences;"),
		domain.NewQuery("SELECT sum(pg_database_size(d.oid)) as size_database FROM pg_database d ORDER BY 1 DESC LIMIT 10;"),
		domain.NewQuery("SELECT sum(pg_relation_size(c.oid)) as size_table FROM pg_class c, pg_namespace n WHERE (relkind = 'r') AND n.oid = c.relnamespace;"),
		domain.NewQuery("SELECT sum(pg_relation_size(c.oid)) as size_index FROM pg_class c, pg_namespace n WHERE (relkind = 'i') AND n.oid = c.relnamespace;"),
		domain.NewQuery("SELECT sum(pg_relation_size(c.oid)) as size_relation FROM pg_class c, pg_namespace n WHERE (relkind = 'i' OR relkind = 'r') AND n.oid = c.relnamespace;"),
		domain.NewQuery("select count(*) as backends_waiting from pg_stat_activity where waiting = 't';"),
		domain.NewQuery("SELECT (SELECT count(*) FROM pg_locks) as locks"),
		domain.NewQuery("SELECT COALESCE(max(COALESCE(ROUND(EXTRACT(epoch FROM now()-query_start)),0)),0) as query_time_max FROM pg_stat_activity WHERE current_query <> '<IDLE>';"),
		domain.NewQuery("SELECT COALESCE(max(COALESCE(ROUND(EXTRACT(epoch FROM now()-query_start)),0)),0) as query_time_idle_in_txn FROM pg_stat_activity WHERE current_query = '<IDLE> in transaction';"),
		domain.NewQuery("SELECT max(COALESCE(ROUND(EXTRACT(epoch FROM now()-xact_start)),0)) as txn_time_max FROM pg_stat_activity WHERE xact_start IS NOT NULL;"),
		domain.NewQuery("SELECT max(age(datfrozenxid)) as datfrozenxid_age FROM pg_database WHERE datallowconn;"),
		domain.NewQuery("SELECT count(*) as wal_files FROM pg_ls_dir('pg_xlog') WHERE pg_ls_dir ~ E'^[0-9A-F]{24}$';"),
	}

	for _, op := range []string{Vacuum, Analyze} {
		for _, autoOnly := range []bool{true, false} {
			q = append(q, domain.NewQuery(StalenessQuery(op, autoOnly)))
		}
	}

	q = append(q,
		domain.NewQuery("SELECT COUNT(*) AS jobs FROM delayed_jobs", DelayedJobGroup),
		domain.NewQuery("SELECT COUNT(*) AS jobs_older_than_1_minute FROM delayed_jobs WHERE created_at < NOW() - INTERVAL'1 MINUTE'", DelayedJobGroup),
		domain.NewQuery("SELECT COUNT(*) AS jobs_older_than_1_hour FROM delayed_jobs WHERE created_at < NOW() - INTERVAL'1 HOUR'", DelayedJobGroup),
		domain.NewQuery("SELECT COUNT(*) AS jobs_older_than_1_day FROM delayed_jobs WHERE created_at < NOW() - INTERVAL'1 DAY'", DelayedJobGroup),
	)
	return q
}

// StalenessQuery returns the query for the oldest "seconds since last op" across
// ordinary tables outside information_schema. Tables never processed count as -1.
// With autoOnly only the autovacuum daemon's runs are considered, otherwise the
// latest of manual and automatic runs. The result column is {auto}{op}_age.
func StalenessQuery(op string, autoOnly bool) string {
	prefix := ""
	criteria := fmt.Sprintf("GREATEST(pg_stat_get_last_%[1]s_time(c.oid), pg_stat_get_last_auto%[1]s_time(c.oid))", op)
	if autoOnly {
		prefix = "auto"
		criteria = fmt.Sprintf("pg_stat_get_last_auto%s_time(c.oid)", op)
	}
	return fmt.Sprintf("SELECT max(CASE WHEN v IS NULL THEN -1 ELSE round(extract(epoch FROM now()-v)) END) as %s%s_age "+
		"FROM (SELECT nspname, relname, %s AS v FROM pg_class c, pg_namespace n "+
		"WHERE relkind = 'r' AND n.oid = c.relnamespace AND n.nspname <> 'information_schema' ORDER BY 3) AS foo;",
		prefix, op, criteria)
}
